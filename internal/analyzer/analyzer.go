package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/Zie619/n8n-workflows/pkg/types"
)

// AnalysisError reports that a single document could not be parsed or
// analyzed. It is counted per file during indexing and never aborts a batch.
type AnalysisError struct {
	Path string
	Err  error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analyze %s: %v", e.Path, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// Analyzer extracts searchable metadata from workflow JSON documents.
type Analyzer struct {
	corpusRoot string
}

// New creates an Analyzer for documents under corpusRoot. The root is used
// only to derive each record's folder segment.
func New(corpusRoot string) *Analyzer {
	return &Analyzer{corpusRoot: corpusRoot}
}

// document mirrors the loosely structured source JSON. Every field is
// optional; defaults are applied here so downstream code sees a fully
// specified record.
type document struct {
	ID          json.RawMessage   `json:"id"`
	Name        string            `json:"name"`
	Active      bool              `json:"active"`
	Description string            `json:"description"`
	Nodes       []node            `json:"nodes"`
	Tags        []json.RawMessage `json:"tags"`
	CreatedAt   json.RawMessage   `json:"createdAt"`
	UpdatedAt   json.RawMessage   `json:"updatedAt"`
}

type node struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Analyze reads and analyzes one workflow document, returning its derived
// record with AnalyzedAt left zero for the caller to fill in. A failure is
// returned as *AnalysisError and is isolated to this document.
func (a *Analyzer) Analyze(path string) (*types.Workflow, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &AnalysisError{Path: path, Err: err}
	}

	var doc document
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, &AnalysisError{Path: path, Err: err}
	}

	filename := filepath.Base(path)
	hash := sha256.Sum256(content)

	trigger, integrations := analyzeNodes(doc.Nodes)
	nodeCount := len(doc.Nodes)
	complexity := types.ComplexityForNodeCount(nodeCount)

	wf := &types.Workflow{
		Filename:     filename,
		Name:         workflowName(filename, doc.Name),
		WorkflowID:   rawString(doc.ID),
		Folder:       a.folderFor(path),
		Active:       doc.Active,
		TriggerType:  trigger,
		Complexity:   complexity,
		NodeCount:    nodeCount,
		Integrations: integrations,
		Tags:         cleanTags(doc.Tags),
		CreatedAt:    rawString(doc.CreatedAt),
		UpdatedAt:    rawString(doc.UpdatedAt),
		FileHash:     hex.EncodeToString(hash[:]),
		FileSize:     int64(len(content)),
	}

	if desc := strings.TrimSpace(doc.Description); desc != "" {
		wf.Description = desc
	} else {
		wf.Description = buildDescription(trigger, integrations, nodeCount, complexity)
	}

	return wf, nil
}

// analyzeNodes derives the trigger classification and the integration set
// from the node type identifiers. The last matching node wins the trigger
// classification, so a webhook node followed by a schedule node yields
// Scheduled. That matches the observed behavior of the corpus tooling.
func analyzeNodes(nodes []node) (types.TriggerType, []string) {
	trigger := types.TriggerManual
	seen := make(map[string]struct{})

	for _, n := range nodes {
		lower := strings.ToLower(n.Type)
		switch {
		case strings.Contains(lower, "webhook"):
			trigger = types.TriggerWebhook
		case strings.Contains(lower, "cron"), strings.Contains(lower, "schedule"):
			trigger = types.TriggerScheduled
		case strings.Contains(lower, "trigger"):
			trigger = types.TriggerTriggered
		}

		// The second dotted segment names the service, e.g.
		// "n8n-nodes-base.slack". The literal core/base segments are
		// infrastructure, not integrations.
		parts := strings.Split(n.Type, ".")
		if len(parts) < 2 {
			continue
		}
		seg := parts[1]
		if seg == "" || seg == "core" || seg == "base" {
			continue
		}
		seen[capitalize(seg)] = struct{}{}
	}

	integrations := make([]string, 0, len(seen))
	for name := range seen {
		integrations = append(integrations, name)
	}
	sort.Strings(integrations)

	return trigger, integrations
}

// buildDescription composes the one-line summary for documents that carry no
// description of their own. Integrations are already sorted, so the first
// three shown are deterministic.
func buildDescription(trigger types.TriggerType, integrations []string, nodeCount int, complexity types.Complexity) string {
	var b strings.Builder
	b.WriteString(string(trigger))
	b.WriteString(" workflow")

	if len(integrations) > 0 {
		shown := integrations
		if len(shown) > 3 {
			shown = shown[:3]
		}
		b.WriteString(" integrating ")
		b.WriteString(strings.Join(shown, ", "))
		if extra := len(integrations) - 3; extra > 0 {
			fmt.Fprintf(&b, " (+%d more)", extra)
		}
	}

	fmt.Fprintf(&b, ". Uses %d nodes (%s complexity).", nodeCount, complexity)
	return b.String()
}

// folderFor returns the document's path segment relative to the corpus root,
// or "" for documents at the root.
func (a *Analyzer) folderFor(path string) string {
	rel, err := filepath.Rel(a.corpusRoot, path)
	if err != nil {
		return ""
	}
	dir := filepath.Dir(rel)
	if dir == "." {
		return ""
	}
	return filepath.ToSlash(dir)
}

// cleanTags normalizes source tags, which arrive either as plain strings or
// as objects with id/name fields.
func cleanTags(raw []json.RawMessage) []string {
	tags := make([]string, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			tags = append(tags, s)
			continue
		}
		var obj struct {
			ID   json.RawMessage `json:"id"`
			Name string          `json:"name"`
		}
		if err := json.Unmarshal(r, &obj); err == nil {
			if obj.Name != "" {
				tags = append(tags, obj.Name)
			} else if id := rawString(obj.ID); id != "" {
				tags = append(tags, id)
			}
		}
	}
	return tags
}

// rawString renders an optional JSON scalar as a string without caring
// whether the source wrote it as a string or a number.
func rawString(r json.RawMessage) string {
	if len(r) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(r, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(r))
}

// capitalize upper-cases the first rune only, leaving the rest untouched.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
