package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// diagramDoc is the slice of a workflow document the diagram needs: node
// names and types plus the connection graph. Connections arrive keyed by
// source node name; each value's "main" member is a list of output slots,
// each holding the targets wired to that slot.
type diagramDoc struct {
	Nodes       []node                     `json:"nodes"`
	Connections map[string]json.RawMessage `json:"connections"`
}

type nodeOutputs struct {
	Main [][]connectionTarget `json:"main"`
}

type connectionTarget struct {
	Node string `json:"node"`
}

// node style classes by type keyword, checked in order.
var diagramStyles = []struct {
	keywords []string
	style    string
}{
	{[]string{"trigger", "webhook", "cron"}, "fill:#b3e0ff,stroke:#0066cc"},
	{[]string{"if", "switch"}, "fill:#ffffb3,stroke:#e6e600"},
	{[]string{"function", "code"}, "fill:#d9b3ff,stroke:#6600cc"},
	{[]string{"error"}, "fill:#ffb3b3,stroke:#cc0000"},
}

const diagramDefaultStyle = "fill:#d9d9d9,stroke:#666666"

// MermaidDiagram renders a workflow document's node graph as Mermaid
// flowchart source. It is a pure derivation over the raw document: nothing
// is stored, and a document with no nodes yields a one-node placeholder
// graph rather than an error.
func MermaidDiagram(content []byte) (string, error) {
	var doc diagramDoc
	if err := json.Unmarshal(content, &doc); err != nil {
		return "", fmt.Errorf("failed to parse workflow document: %w", err)
	}

	if len(doc.Nodes) == 0 {
		return "graph TD\n  EmptyWorkflow[No nodes found in workflow]", nil
	}

	// Nodes are identified in connections by name, so build a name to
	// mermaid-id map. A duplicated name keeps the last node's id, matching
	// how the corpus tooling has always rendered such documents.
	ids := make(map[string]string, len(doc.Nodes))
	for i, n := range doc.Nodes {
		name := n.Name
		if name == "" {
			name = fmt.Sprintf("Node %d", i)
		}
		ids[name] = fmt.Sprintf("node%d", i)
	}

	lines := []string{"graph TD"}

	for i, n := range doc.Nodes {
		name := n.Name
		if name == "" {
			name = fmt.Sprintf("Node %d", i)
		}
		nodeType := strings.TrimPrefix(n.Type, "n8n-nodes-base.")

		label := fmt.Sprintf("%s<br>(%s)",
			strings.ReplaceAll(name, `"`, "'"),
			strings.ReplaceAll(nodeType, `"`, "'"))
		lines = append(lines, fmt.Sprintf("  %s[%q]", ids[name], label))
		lines = append(lines, fmt.Sprintf("  style %s %s", ids[name], styleFor(nodeType)))
	}

	// Keys are iterated per source node in the order mermaid ids were
	// assigned, so output is deterministic for a given document.
	for i, n := range doc.Nodes {
		name := n.Name
		if name == "" {
			name = fmt.Sprintf("Node %d", i)
		}
		raw, ok := doc.Connections[name]
		if !ok {
			continue
		}

		// Tolerate unexpected shapes: a source whose connections don't
		// decode contributes no edges, same as the document omitting it.
		var outputs nodeOutputs
		if err := json.Unmarshal(raw, &outputs); err != nil {
			continue
		}

		for slot, targets := range outputs.Main {
			for _, target := range targets {
				targetID, ok := ids[target.Node]
				if !ok {
					continue
				}
				arrow := " --> "
				if len(outputs.Main) > 1 {
					arrow = fmt.Sprintf(" -->|%d| ", slot)
				}
				lines = append(lines, "  "+ids[name]+arrow+targetID)
			}
		}
	}

	return strings.Join(lines, "\n"), nil
}

func styleFor(nodeType string) string {
	lower := strings.ToLower(nodeType)
	for _, class := range diagramStyles {
		for _, kw := range class.keywords {
			if strings.Contains(lower, kw) {
				return class.style
			}
		}
	}
	return diagramDefaultStyle
}
