package lights

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

// ErrNotFound is matched by every error returned for an unknown light id
var ErrNotFound = errors.New("light not found")

// NotFoundError identifies the light id that could not be found
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("light %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Light is a single smart light. Only IsOn changes after creation.
type Light struct {
	ID   int    `json:"lightId"`
	Name string `json:"lightName"`
	IsOn bool   `json:"isOn"`
}

// Registry owns the state of all lights in the home
type Registry struct {
	lights map[int]*Light
	order  []int
}

// NewRegistry creates a registry seeded with the demo lights
func NewRegistry() *Registry {
	return NewRegistryWith(
		Light{ID: 1, Name: "Table Lamp", IsOn: false},
		Light{ID: 2, Name: "Porch light", IsOn: false},
		Light{ID: 3, Name: "Chandelier", IsOn: true},
	)
}

// NewRegistryWith creates a registry holding the given lights. Later entries
// with a duplicate id replace earlier ones.
func NewRegistryWith(seed ...Light) *Registry {
	r := &Registry{lights: make(map[int]*Light, len(seed))}
	for _, l := range seed {
		if _, exists := r.lights[l.ID]; !exists {
			r.order = append(r.order, l.ID)
		}
		light := l
		r.lights[l.ID] = &light
	}
	sort.Ints(r.order)
	return r
}

// List returns a snapshot of all lights ordered by id
func (r *Registry) List(ctx context.Context) []Light {
	slog.DebugContext(ctx, "Getting lights", "count", len(r.order))

	out := make([]Light, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.lights[id])
	}
	return out
}

// SetState switches a light on or off and returns its updated state
func (r *Registry) SetState(ctx context.Context, id int, isOn bool) (Light, error) {
	slog.InfoContext(ctx, "Changing light state", "light_id", id, "is_on", isOn)

	light, exists := r.lights[id]
	if !exists {
		return Light{}, &NotFoundError{ID: id}
	}

	light.IsOn = isOn

	return *light, nil
}
