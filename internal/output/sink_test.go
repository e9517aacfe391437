package output

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/ontogen/internal/errors"
	"github.com/conduit-lang/ontogen/internal/plan"
)

func TestLayoutFileNames(t *testing.T) {
	l := Layout{Package: "zoo"}

	tests := []struct {
		kind     plan.ArtifactKind
		name     string
		expected string
	}{
		{plan.Interface, "Dog", "dog_gen.go"},
		{plan.Interface, "Dog_", "dog_gen.go"},
		{plan.Implementation, "DefaultDog_", "default_dog_gen.go"},
		{plan.UserInterface, "Dog", "dog_ext.go"},
		{plan.UserImplementation, "DefaultDog", "default_dog_ext.go"},
		{plan.Vocabulary, "vocabulary", "vocabulary_gen.go"},
		{plan.Factory, "ZooFactory", "zoo_factory_gen.go"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, l.FileName(tt.kind, tt.name))
		})
	}
	assert.Equal(t, filepath.Join("zoo", "dog_gen.go"), l.Path(plan.Interface, "Dog"))
}

func TestSinkWriteAndExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink := NewSink(fs, "/out", Layout{Package: "zoo"})

	assert.False(t, sink.Exists(plan.UserInterface, "Dog"))

	written, err := sink.Write(map[string]string{
		"zoo/dog_ext.go": "package zoo\n",
		"zoo/dog_gen.go": "package zoo\n",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/out/zoo/dog_ext.go", "/out/zoo/dog_gen.go"}, written)
	assert.True(t, sink.Exists(plan.UserInterface, "Dog"))

	data, err := afero.ReadFile(fs, "/out/zoo/dog_gen.go")
	require.NoError(t, err)
	assert.Equal(t, "package zoo\n", string(data))
}

func TestSinkFailureIsMarked(t *testing.T) {
	sink := NewSink(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/out", Layout{Package: "zoo"})

	_, err := sink.Write(map[string]string{"zoo/dog_gen.go": "package zoo\n"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSink))
}
