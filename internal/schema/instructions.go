package schema

import (
	"bytes"
	"encoding/json"
	"strings"
)

// jsonNode is one node of the JSON-Schema document shown to the model.
type jsonNode struct {
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Type        FieldType   `json:"type"`
	Properties  *properties `json:"properties,omitempty"`
	Items       *jsonNode   `json:"items,omitempty"`
	Required    []string    `json:"required,omitempty"`
}

// properties keeps declaration order when marshaled, which a map would not.
type properties struct {
	names []string
	nodes []*jsonNode
}

func (p *properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range p.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(p.nodes[i])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func objectNode(fields []Field) *jsonNode {
	node := &jsonNode{Type: TypeObject}
	if len(fields) == 0 {
		return node
	}

	node.Properties = &properties{}
	for _, f := range fields {
		node.Properties.names = append(node.Properties.names, f.Name)
		node.Properties.nodes = append(node.Properties.nodes, fieldNode(f))
		if f.Required {
			node.Required = append(node.Required, f.Name)
		}
	}
	return node
}

func fieldNode(f Field) *jsonNode {
	var node *jsonNode
	switch f.Type {
	case TypeObject:
		node = objectNode(f.Fields)
	case TypeArray:
		node = &jsonNode{Type: TypeArray}
		if f.Items != nil {
			node.Items = fieldNode(*f.Items)
		}
	default:
		node = &jsonNode{Type: f.Type}
	}
	node.Description = f.Description
	return node
}

// JSONSchema renders the descriptor as an indented JSON-Schema document.
// Properties appear in declaration order, so the output is stable.
func (s *Schema) JSONSchema() (string, error) {
	root := objectNode(s.Fields)
	root.Title = s.Name
	root.Description = s.Description

	raw, err := json.Marshal(root)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return "", err
	}
	return out.String(), nil
}

// FormatInstructions returns the text appended to a prompt so the model
// replies with a single JSON object matching the schema.
func (s *Schema) FormatInstructions() (string, error) {
	doc, err := s.JSONSchema()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Reply with a single JSON object that is a valid instance of the JSON schema below.\n")
	b.WriteString("Fill in values for the properties; do not echo the schema itself.\n")
	b.WriteString("Fields listed under \"required\" must be present and must not be null or empty.\n")
	b.WriteString("\nHere is the output schema:\n```json\n")
	b.WriteString(doc)
	b.WriteString("\n```")
	return b.String(), nil
}
