// Package vocab provides the thematic word catalogs that seed schema synthesis.
package vocab

import (
	"fmt"
	"sort"
)

// FallbackDomain is the domain used when a requested one is not registered.
const FallbackDomain = "generic"

// Pack holds the noun and field vocabulary for one domain.
type Pack struct {
	Domain string   `yaml:"domain"`
	Nouns  []string `yaml:"nouns"`
	Fields []string `yaml:"fields"`
}

// Validate checks that the pack can actually feed the planner.
func (p Pack) Validate() error {
	if p.Domain == "" {
		return fmt.Errorf("vocabulary pack has no domain name")
	}
	if len(p.Nouns) == 0 {
		return fmt.Errorf("vocabulary pack %q has no nouns", p.Domain)
	}
	if len(p.Fields) == 0 {
		return fmt.Errorf("vocabulary pack %q has no fields", p.Domain)
	}
	return nil
}

// Catalog maps domain names to vocabulary packs.
type Catalog struct {
	packs map[string]Pack
}

// NewCatalog returns a catalog preloaded with the built-in domains.
func NewCatalog() *Catalog {
	c := &Catalog{packs: make(map[string]Pack, len(builtins))}
	for _, p := range builtins {
		c.packs[p.Domain] = p
	}
	return c
}

// Domains returns the registered domain names in sorted order.
func (c *Catalog) Domains() []string {
	domains := make([]string, 0, len(c.packs))
	for d := range c.packs {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	return domains
}

// Has reports whether the domain has a registered pack.
func (c *Catalog) Has(domain string) bool {
	_, ok := c.packs[domain]
	return ok
}

// Lookup returns the pack for domain, falling back to the generic pack
// when the domain is unknown.
func (c *Catalog) Lookup(domain string) Pack {
	if p, ok := c.packs[domain]; ok {
		return p
	}
	return c.packs[FallbackDomain]
}

// Add registers a pack, replacing any existing pack for the same domain.
func (c *Catalog) Add(p Pack) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.packs[p.Domain] = p
	return nil
}

// builtins mirrors the word lists the generator has always shipped with.
// Nouns are capitalized seeds for entity names; fields are lowercase
// identifier seeds.
var builtins = []Pack{
	{
		Domain: "blog",
		Nouns: []string{
			"Post", "Article", "Comment", "Category", "Tag",
			"Author", "User", "Entry", "Publication",
		},
		Fields: []string{
			"title", "content", "body", "pub_date", "updated_at",
			"status", "slug", "excerpt", "author", "category",
			"tags", "name", "email", "website", "text",
			"created_on", "active", "view_count",
		},
	},
	{
		Domain: "inventory",
		Nouns: []string{
			"Product", "Item", "Stock", "Warehouse", "Supplier",
			"Order", "Customer", "Shipment", "Location", "Category",
			"Batch",
		},
		Fields: []string{
			"name", "description", "sku", "quantity", "price",
			"cost", "location", "supplier", "order_date", "customer",
			"address", "status", "tracking_number", "weight", "dimensions",
			"reorder_level", "last_received",
		},
	},
	{
		Domain: "saas",
		Nouns: []string{
			"Tenant", "Organization", "User", "Subscription", "Plan",
			"Feature", "Invoice", "Billing", "ApiKey", "Role",
			"Permission", "Workspace", "Project",
		},
		Fields: []string{
			"name", "subdomain", "owner", "plan", "status",
			"trial_ends_at", "created_at", "updated_at", "is_active", "feature_flags",
			"billing_address", "invoice_number", "amount", "due_date", "paid_date",
			"api_key_value", "role_name", "description", "user_limit", "storage_limit",
		},
	},
	{
		Domain: "generic",
		Nouns: []string{
			"Item", "Record", "Entry", "Data", "Object",
			"Element", "Unit", "Component", "Node", "Entity",
			"Thing",
		},
		Fields: []string{
			"name", "value", "description", "identifier", "timestamp",
			"flag", "status", "notes", "field_a", "field_b",
			"related_item", "parent", "child", "attribute", "code",
			"label",
		},
	},
}
