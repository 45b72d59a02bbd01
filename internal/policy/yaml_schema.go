package policy

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type schemaError struct {
	Path    string
	Line    int
	Message string
}

func (e schemaError) String() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d field %s: %s", e.Line, e.Path, e.Message)
	}
	return fmt.Sprintf("field %s: %s", e.Path, e.Message)
}

func formatSchemaErrors(path string, errs []schemaError) string {
	sort.Slice(errs, func(i, j int) bool {
		if errs[i].Line != errs[j].Line {
			return errs[i].Line < errs[j].Line
		}
		if errs[i].Path != errs[j].Path {
			return errs[i].Path < errs[j].Path
		}
		return errs[i].Message < errs[j].Message
	})
	var b strings.Builder
	b.WriteString("schema validation failed for ")
	b.WriteString(path)
	for _, e := range errs {
		b.WriteString("\n- ")
		b.WriteString(e.String())
	}
	return b.String()
}

func validateTableYAML(root *yaml.Node) []schemaError {
	if root == nil || len(root.Content) == 0 {
		return []schemaError{{Path: "mapping", Message: "empty YAML document"}}
	}
	errList := []schemaError{}
	m := validateMapNode(root.Content[0], "mapping", []string{"categories"}, []string{"categories"}, &errList)
	cats, ok := m["categories"]
	if !ok {
		return errList
	}
	seq := validateSequenceNode(cats, "mapping.categories", &errList)
	for i, item := range seq {
		path := fmt.Sprintf("mapping.categories[%d]", i)
		c := validateMapNode(item, path,
			[]string{"name", "weight_tier", "keywords", "label", "signal"},
			[]string{"name", "weight_tier", "keywords"}, &errList)
		if kw, ok := c["keywords"]; ok {
			for j, k := range validateSequenceNode(kw, path+".keywords", &errList) {
				if k.Kind != yaml.ScalarNode {
					errList = append(errList, schemaError{Path: fmt.Sprintf("%s.keywords[%d]", path, j), Line: k.Line, Message: "must be a string"})
				}
			}
		}
		if sig, ok := c["signal"]; ok {
			validateMapNode(sig, path+".signal", []string{"stat_name", "match", "perturbation_name"}, nil, &errList)
		}
	}
	return errList
}

func validateMapNode(node *yaml.Node, path string, allowed, required []string, errs *[]schemaError) map[string]*yaml.Node {
	result := map[string]*yaml.Node{}
	if node == nil {
		*errs = append(*errs, schemaError{Path: path, Message: "missing object"})
		return result
	}
	if node.Kind != yaml.MappingNode {
		*errs = append(*errs, schemaError{Path: path, Line: node.Line, Message: "must be a mapping/object"})
		return result
	}
	allowedSet := map[string]bool{}
	for _, a := range allowed {
		allowedSet[a] = true
	}
	seen := map[string]int{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k := node.Content[i]
		key := k.Value
		if prevLine, ok := seen[key]; ok {
			*errs = append(*errs, schemaError{Path: path + "." + key, Line: k.Line, Message: fmt.Sprintf("duplicate key (already defined at line %d)", prevLine)})
			continue
		}
		seen[key] = k.Line
		if !allowedSet[key] {
			*errs = append(*errs, schemaError{Path: path + "." + key, Line: k.Line, Message: "unknown field"})
		}
		result[key] = node.Content[i+1]
	}
	for _, req := range required {
		if _, ok := result[req]; !ok {
			*errs = append(*errs, schemaError{Path: path + "." + req, Line: node.Line, Message: "missing required field"})
		}
	}
	return result
}

func validateSequenceNode(node *yaml.Node, path string, errs *[]schemaError) []*yaml.Node {
	if node == nil {
		*errs = append(*errs, schemaError{Path: path, Message: "missing sequence"})
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		*errs = append(*errs, schemaError{Path: path, Line: node.Line, Message: "must be a sequence/array"})
		return nil
	}
	return node.Content
}
