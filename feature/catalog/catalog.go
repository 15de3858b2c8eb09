package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"indy-builder/core/config"
)

// ErrNotWhitelisted is returned for a blueprint outside the whitelist. Nothing is computed for it.
var ErrNotWhitelisted = errors.New("blueprint is not whitelisted")

const (
	// LiveHub is the only hub whose sell price may come from a live price source.
	LiveHub = "Jita"

	whitelistedME = 10
	whitelistedTE = 20
)

// outputHubs is the fixed export column order.
var outputHubs = []string{"Jita", "Amarr", "Dodixie", "O-PNSN", "C-N4OD"}

// defaultHubLocations maps each hub to the station and structure ids whose
// assets and orders count towards it.
var defaultHubLocations = map[string][]int64{
	"Jita": {
		60003760,      // Jita IV - Moon 4 - Caldari Navy Assembly Plant
		1022734985679, // Perimeter - Tranquility Trading Tower
	},
	"Amarr":   {60008494}, // Amarr VIII (Oris) - Emperor Family Academy
	"Dodixie": {60011866}, // Dodixie IX - Moon 20 - Federation Navy Assembly Plant
	"O-PNSN":  {1036927076065},
	"C-N4OD":  {1037131880317},
}

// alwaysAllowed are whitelisted regardless of the build plan.
var alwaysAllowed = []string{"Rifter", "Merlin"}

// Catalog is the immutable whitelist, efficiency and hub configuration.
// It is built once at startup and shared by reference.
type Catalog struct {
	names        map[string]struct{}
	ids          map[int64]struct{}
	quantities   map[string]int
	hubLocations map[string][]int64
}

// Options customizes a Catalog. Zero values fall back to the bundled data.
type Options struct {
	// BuildPlan replaces the bundled build plan when set.
	BuildPlan string
	// ExtraNames and ExtraIDs extend the whitelist.
	ExtraNames []string
	ExtraIDs   []int64
	// HubLocations replaces the location ids of the named hubs (case-insensitive).
	HubLocations map[string][]int64
}

// New builds a Catalog from the bundled data and the options.
func New(opts Options) (*Catalog, error) {
	rawPlan := opts.BuildPlan
	if strings.TrimSpace(rawPlan) == "" {
		rawPlan = bundledBuildPlan
	}
	plan, err := ParseBuildPlan(rawPlan)
	if err != nil {
		return nil, fmt.Errorf("failed to parse build plan: %w", err)
	}

	c := &Catalog{
		names:        make(map[string]struct{}),
		ids:          make(map[int64]struct{}),
		quantities:   make(map[string]int, len(plan)),
		hubLocations: make(map[string][]int64, len(defaultHubLocations)),
	}

	for name, qty := range plan {
		c.quantities[normalize(name)] = qty
		c.names[normalize(name)] = struct{}{}
	}
	for _, name := range alwaysAllowed {
		c.names[normalize(name)] = struct{}{}
	}
	for _, name := range opts.ExtraNames {
		if n := normalize(name); n != "" {
			c.names[n] = struct{}{}
		}
	}
	for _, id := range opts.ExtraIDs {
		c.ids[id] = struct{}{}
	}

	for hub, ids := range defaultHubLocations {
		c.hubLocations[hub] = append([]int64(nil), ids...)
	}
	for hub, ids := range opts.HubLocations {
		name := hub
		if canonical, ok := CanonicalHub(hub); ok {
			name = canonical
		}
		c.hubLocations[name] = append([]int64(nil), ids...)
	}

	return c, nil
}

// FromProfile builds the Catalog described by an operator profile.
func FromProfile(p *config.Profile) (*Catalog, error) {
	return New(Options{
		BuildPlan:    p.BuildPlan,
		ExtraNames:   p.Whitelist.Names,
		ExtraIDs:     p.Whitelist.IDs,
		HubLocations: p.HubLocations,
	})
}

// EnsureWhitelisted rejects a blueprint whose name and id are both outside the whitelist.
func (c *Catalog) EnsureWhitelisted(bp config.Blueprint) error {
	if _, ok := c.names[normalize(bp.Name)]; ok {
		return nil
	}
	if bp.ID != nil {
		if _, ok := c.ids[*bp.ID]; ok {
			return nil
		}
	}

	label := strings.TrimSpace(bp.Name)
	if label == "" && bp.ID != nil {
		label = fmt.Sprintf("#%d", *bp.ID)
	}
	return fmt.Errorf("%w: %q, refusing runtime calculation", ErrNotWhitelisted, label)
}

// IsWhitelisted reports whether the name is on the whitelist.
func (c *Catalog) IsWhitelisted(name string) bool {
	_, ok := c.names[normalize(name)]
	return ok
}

// EfficiencyFor returns the ME and TE used for a blueprint.
// Whitelisted names use the fixed research profile; anything else uses the defaults.
func (c *Catalog) EfficiencyFor(name string, defaultME, defaultTE int) (me, te int) {
	if c.IsWhitelisted(name) {
		return whitelistedME, whitelistedTE
	}
	return defaultME, defaultTE
}

// BuildQuantity returns the planned build quantity of an item.
func (c *Catalog) BuildQuantity(name string) (int, bool) {
	qty, ok := c.quantities[normalize(name)]
	return qty, ok
}

// Hubs returns the export hubs in column order.
func (c *Catalog) Hubs() []string {
	return append([]string(nil), outputHubs...)
}

// HubLocations returns a copy of the hub to location id table.
func (c *Catalog) HubLocations() map[string][]int64 {
	out := make(map[string][]int64, len(c.hubLocations))
	for hub, ids := range c.hubLocations {
		out[hub] = append([]int64(nil), ids...)
	}
	return out
}

// WhitelistNames returns the normalized whitelist, sorted.
func (c *Catalog) WhitelistNames() []string {
	names := make([]string, 0, len(c.names))
	for name := range c.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CanonicalHub maps a hub name in any case to its export spelling.
func CanonicalHub(name string) (string, bool) {
	for _, hub := range outputHubs {
		if strings.EqualFold(hub, strings.TrimSpace(name)) {
			return hub, true
		}
	}
	return "", false
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
