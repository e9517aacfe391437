package document

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/conduit-lang/ontogen/internal/errors"
	"github.com/conduit-lang/ontogen/internal/ontology"
)

// converter turns a decoded document into an ontology.Ontology.
type converter struct {
	iri      ontology.IRI
	prefixes map[string]string
}

func convert(raw *rawDocument, imports []ontology.IRI) (*ontology.Ontology, error) {
	if strings.TrimSpace(raw.Ontology) == "" {
		return nil, errors.WithHint(
			errors.Wrap(errors.ErrInvalidDocument, "missing ontology IRI"),
			"add a top-level 'ontology:' key")
	}

	c := &converter{
		iri:      ontology.IRI(strings.TrimSuffix(strings.TrimSpace(raw.Ontology), "#")),
		prefixes: make(map[string]string),
	}
	for alias, ns := range raw.Prefixes {
		c.prefixes[strings.TrimSuffix(alias, ":")] = ns
	}

	o := &ontology.Ontology{
		IRI:      c.iri,
		Prefixes: c.prefixes,
		Imports:  imports,
	}

	for _, name := range sortedKeys(raw.Classes) {
		rc := raw.Classes[name]
		axioms := &ontology.ClassAxioms{IRI: c.resolve(name)}
		for _, v := range rc.SubClassOf {
			e, err := c.classExpression(v)
			if err != nil {
				return nil, errors.Wrapf(err, "class %s subClassOf", name)
			}
			axioms.SuperClasses = append(axioms.SuperClasses, e)
		}
		for _, v := range rc.EquivalentTo {
			e, err := c.classExpression(v)
			if err != nil {
				return nil, errors.Wrapf(err, "class %s equivalentTo", name)
			}
			axioms.EquivalentClasses = append(axioms.EquivalentClasses, e)
		}
		for _, d := range rc.DisjointWith {
			axioms.DisjointWith = append(axioms.DisjointWith, c.resolve(d))
		}
		o.Classes = append(o.Classes, axioms)
	}

	for _, name := range sortedKeys(raw.ObjectProperties) {
		rp := raw.ObjectProperties[name]
		p := &ontology.ObjectProperty{IRI: c.resolve(name), Functional: rp.Functional}
		domains, err := c.classExpressions(rp.Domain)
		if err != nil {
			return nil, errors.Wrapf(err, "object property %s domain", name)
		}
		ranges, err := c.classExpressions(rp.Range)
		if err != nil {
			return nil, errors.Wrapf(err, "object property %s range", name)
		}
		p.Domains, p.Ranges = domains, ranges
		o.ObjectProperties = append(o.ObjectProperties, p)
	}

	for _, name := range sortedKeys(raw.DataProperties) {
		rp := raw.DataProperties[name]
		p := &ontology.DataProperty{IRI: c.resolve(name), Functional: rp.Functional}
		domains, err := c.classExpressions(rp.Domain)
		if err != nil {
			return nil, errors.Wrapf(err, "data property %s domain", name)
		}
		p.Domains = domains
		for _, v := range rp.Range {
			r, err := c.dataRange(v)
			if err != nil {
				return nil, errors.Wrapf(err, "data property %s range", name)
			}
			p.Ranges = append(p.Ranges, r)
		}
		o.DataProperties = append(o.DataProperties, p)
	}

	for _, name := range sortedKeys(raw.Individuals) {
		ri := raw.Individuals[name]
		ind := &ontology.Individual{IRI: c.resolve(name)}
		for _, t := range ri.Types {
			ind.Types = append(ind.Types, c.resolve(t))
		}
		for _, prop := range sortedKeys(ri.Objects) {
			for _, obj := range ri.Objects[prop] {
				ind.Objects = append(ind.Objects, ontology.ObjectAssertion{Property: c.resolve(prop), Object: c.resolve(obj)})
			}
		}
		for _, prop := range sortedKeys(ri.Data) {
			for _, v := range ri.Data[prop] {
				lit, err := c.literal(v)
				if err != nil {
					return nil, errors.Wrapf(err, "individual %s data %s", name, prop)
				}
				ind.Data = append(ind.Data, ontology.DataAssertion{Property: c.resolve(prop), Value: lit})
			}
		}
		o.Individuals = append(o.Individuals, ind)
	}

	return o, nil
}

// resolve expands a name into an IRI.
func (c *converter) resolve(name string) ontology.IRI {
	name = strings.TrimSpace(name)
	if strings.Contains(name, "://") || strings.HasPrefix(name, "urn:") {
		return ontology.IRI(name)
	}
	if alias, local, ok := strings.Cut(name, ":"); ok {
		if ns, found := c.prefixes[alias]; found {
			return ontology.IRI(ns + local)
		}
		if ns, found := ontology.WellKnownPrefixes[alias]; found {
			return ontology.IRI(ns + local)
		}
	}
	return ontology.IRI(ontology.Namespace(c.iri) + name)
}

func (c *converter) classExpressions(values []any) ([]ontology.ClassExpression, error) {
	var out []ontology.ClassExpression
	for _, v := range values {
		e, err := c.classExpression(v)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (c *converter) classExpression(v any) (ontology.ClassExpression, error) {
	switch x := v.(type) {
	case string:
		return &ontology.NamedClass{IRI: c.resolve(x)}, nil
	case map[string]any:
		if len(x) != 1 {
			return nil, invalidf("class expression must have exactly one key, got %d", len(x))
		}
		for key, body := range x {
			return c.compound(key, body)
		}
	}
	return nil, invalidf("unsupported class expression %v", v)
}

func (c *converter) compound(key string, body any) (ontology.ClassExpression, error) {
	switch key {
	case "and", "or":
		list, ok := body.([]any)
		if !ok {
			return nil, invalidf("%s expects a list", key)
		}
		operands, err := c.classExpressions(list)
		if err != nil {
			return nil, err
		}
		op := ontology.IntersectionOf
		if key == "or" {
			op = ontology.UnionOf
		}
		return &ontology.Junction{Op: op, Operands: operands}, nil
	case "not":
		operand, err := c.classExpression(body)
		if err != nil {
			return nil, err
		}
		return &ontology.Complement{Operand: operand}, nil
	case "oneOf":
		list, ok := body.([]any)
		if !ok {
			return nil, invalidf("oneOf expects a list")
		}
		one := &ontology.OneOf{}
		for _, item := range list {
			one.Individuals = append(one.Individuals, c.resolve(fmt.Sprint(item)))
		}
		return one, nil
	}

	kind, ok := restrictionKinds[key]
	if !ok {
		return nil, invalidf("unknown class expression %q", key)
	}
	fields, ok := body.(map[string]any)
	if !ok {
		return nil, invalidf("%s expects a mapping", key)
	}
	return c.restriction(kind, fields)
}

var restrictionKinds = map[string]ontology.RestrictionKind{
	"some":    ontology.SomeValuesFrom,
	"all":     ontology.AllValuesFrom,
	"value":   ontology.HasValue,
	"min":     ontology.MinCardinality,
	"max":     ontology.MaxCardinality,
	"exactly": ontology.ExactCardinality,
}

func (c *converter) restriction(kind ontology.RestrictionKind, fields map[string]any) (ontology.ClassExpression, error) {
	prop, ok := fields["property"].(string)
	if !ok || prop == "" {
		return nil, invalidf("%s restriction needs a property", kind)
	}

	cardinality := 0
	if raw, ok := fields["cardinality"]; ok {
		n, err := toInt(raw)
		if err != nil {
			return nil, invalidf("%s cardinality: %v", kind, err)
		}
		cardinality = n
	}

	_, hasDatatype := fields["datatype"]
	_, hasLiteral := fields["literal"]
	if hasDatatype || hasLiteral {
		r := &ontology.DataRestriction{Kind: kind, Property: c.resolve(prop), Cardinality: cardinality}
		if dt, ok := fields["datatype"]; ok {
			dr, err := c.dataRange(dt)
			if err != nil {
				return nil, err
			}
			r.Range = dr
		}
		if lit, ok := fields["literal"]; ok {
			l, err := c.literal(lit)
			if err != nil {
				return nil, err
			}
			r.Value = l
		}
		return r, nil
	}

	r := &ontology.ObjectRestriction{Kind: kind, Property: c.resolve(prop), Cardinality: cardinality}
	if filler, ok := fields["class"]; ok {
		e, err := c.classExpression(filler)
		if err != nil {
			return nil, err
		}
		r.Filler = e
	}
	if ind, ok := fields["individual"].(string); ok {
		r.Value = c.resolve(ind)
	}
	if kind == ontology.SomeValuesFrom || kind == ontology.AllValuesFrom {
		if r.Filler == nil {
			return nil, invalidf("%s restriction on %s needs a class", kind, prop)
		}
	}
	return r, nil
}

func (c *converter) dataRange(v any) (ontology.DataRange, error) {
	switch x := v.(type) {
	case string:
		return &ontology.Datatype{IRI: c.resolve(x)}, nil
	case map[string]any:
		list, ok := x["oneOf"].([]any)
		if !ok || len(x) != 1 {
			return nil, invalidf("data range must be a datatype or {oneOf: [...]}")
		}
		one := &ontology.DataOneOf{}
		for _, item := range list {
			l, err := c.literal(item)
			if err != nil {
				return nil, err
			}
			one.Values = append(one.Values, l)
		}
		return one, nil
	}
	return nil, invalidf("unsupported data range %v", v)
}

// literal converts a document scalar. Integral numbers are xsd:integer,
// other numbers xsd:double. A mapping {value, datatype} sets the datatype
// explicitly.
func (c *converter) literal(v any) (ontology.Literal, error) {
	switch x := v.(type) {
	case string:
		return ontology.Literal{Lexical: x, Datatype: ontology.XSDString}, nil
	case bool:
		return ontology.Literal{Lexical: strconv.FormatBool(x), Datatype: ontology.XSDBoolean}, nil
	case int:
		return ontology.Literal{Lexical: strconv.Itoa(x), Datatype: ontology.XSDInteger}, nil
	case int64:
		return ontology.Literal{Lexical: strconv.FormatInt(x, 10), Datatype: ontology.XSDInteger}, nil
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return ontology.Literal{Lexical: strconv.FormatInt(int64(x), 10), Datatype: ontology.XSDInteger}, nil
		}
		return ontology.Literal{Lexical: strconv.FormatFloat(x, 'g', -1, 64), Datatype: ontology.XSDDouble}, nil
	case map[string]any:
		lexical, ok := x["value"]
		if !ok {
			return ontology.Literal{}, invalidf("typed literal needs a value")
		}
		l := ontology.Literal{Lexical: fmt.Sprint(lexical)}
		if dt, ok := x["datatype"].(string); ok {
			l.Datatype = c.resolve(dt)
		}
		return l, nil
	}
	return ontology.Literal{}, invalidf("unsupported literal %v", v)
}

func toInt(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		return int(x), nil
	case string:
		return strconv.Atoi(x)
	}
	return 0, fmt.Errorf("not a number: %v", v)
}

func invalidf(format string, args ...any) error {
	return errors.Wrapf(errors.ErrInvalidDocument, format, args...)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
