package categories

import (
	"context"
	"sort"
	"strings"

	"github.com/Zie619/n8n-workflows/internal/storage"
	"github.com/Zie619/n8n-workflows/pkg/types"
)

// Fallback is assigned when no rule matches any of a workflow's
// integrations.
const Fallback = "Other"

// Rule maps a category name to the integration substrings that place a
// workflow in it. Matching is case-insensitive substring containment.
type Rule struct {
	Name  string   `yaml:"name"`
	Match []string `yaml:"match"`
}

// DefaultRules is the built-in rule table. Order matters: the first rule
// whose substrings hit any integration wins, so more specific categories
// go before broader ones.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "Messaging", Match: []string{"telegram", "slack", "discord", "whatsapp", "teams", "mattermost", "matrix", "twilio", "sms"}},
		{Name: "Email", Match: []string{"gmail", "mailjet", "outlook", "smtp", "imap", "sendgrid", "mailchimp", "emailsend", "emailreadimap"}},
		{Name: "Cloud Storage", Match: []string{"googledrive", "dropbox", "onedrive", "box", "s3", "googledocs", "googlesheets"}},
		{Name: "Database", Match: []string{"postgres", "mysql", "mongodb", "redis", "airtable", "notion", "supabase"}},
		{Name: "Project Management", Match: []string{"jira", "trello", "asana", "mondaycom", "clickup", "todoist", "linear"}},
		{Name: "AI/ML", Match: []string{"openai", "anthropic", "huggingface", "agent", "langchain", "openthinking", "embeddings"}},
		{Name: "Social Media", Match: []string{"linkedin", "twitter", "facebook", "instagram", "reddit", "youtube"}},
		{Name: "E-commerce", Match: []string{"shopify", "stripe", "paypal", "woocommerce", "chargebee", "quickbooks"}},
		{Name: "Analytics", Match: []string{"googleanalytics", "mixpanel", "segment", "posthog", "grafana"}},
		{Name: "Calendar & Tasks", Match: []string{"googlecalendar", "cal", "calendly", "caldav"}},
		{Name: "Forms", Match: []string{"typeform", "googleforms", "jotform", "form", "surveymonkey"}},
		{Name: "Development", Match: []string{"github", "gitlab", "bitbucket", "jenkins", "docker", "kubernetes", "webhook", "http", "graphql"}},
	}
}

// Classifier assigns one category per workflow from an ordered rule set.
type Classifier struct {
	rules []Rule
}

// NewClassifier builds a classifier. A nil or empty rule set falls back
// to DefaultRules.
func NewClassifier(rules []Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Categorize returns the category of the first rule matched by any of
// the workflow's integrations, or Fallback when none matches.
func (c *Classifier) Categorize(integrations []string) string {
	for _, rule := range c.rules {
		for _, integ := range integrations {
			lowered := strings.ToLower(integ)
			for _, sub := range rule.Match {
				if strings.Contains(lowered, sub) {
					return rule.Name
				}
			}
		}
	}
	return Fallback
}

// Names returns all category names in rule order, with Fallback last.
func (c *Classifier) Names() []string {
	names := make([]string, 0, len(c.rules)+1)
	for _, rule := range c.rules {
		names = append(names, rule.Name)
	}
	return append(names, Fallback)
}

// Bucket is one category with the workflows assigned to it.
type Bucket struct {
	Name      string            `json:"name"`
	Count     int               `json:"count"`
	Workflows []*types.Workflow `json:"workflows"`
}

// GroupWorkflows categorizes every indexed workflow and returns the
// non-empty buckets sorted by count descending, name ascending on ties.
// Workflows within a bucket keep the store's filename ordering.
func (c *Classifier) GroupWorkflows(ctx context.Context, store storage.Store) ([]Bucket, error) {
	workflows, err := store.ListWorkflows(ctx)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]*types.Workflow)
	for _, wf := range workflows {
		name := c.Categorize(wf.Integrations)
		grouped[name] = append(grouped[name], wf)
	}
	buckets := make([]Bucket, 0, len(grouped))
	for name, members := range grouped {
		buckets = append(buckets, Bucket{Name: name, Count: len(members), Workflows: members})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Name < buckets[j].Name
	})
	return buckets, nil
}

// Mapping returns filename to category for every indexed workflow.
func (c *Classifier) Mapping(ctx context.Context, store storage.Store) (map[string]string, error) {
	workflows, err := store.ListWorkflows(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(workflows))
	for _, wf := range workflows {
		out[wf.Filename] = c.Categorize(wf.Integrations)
	}
	return out, nil
}
