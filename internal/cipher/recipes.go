package cipher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/RowanDark/cryptokit/internal/logging"
)

// ErrRecipeNotFound is returned when no recipe has the requested name.
var ErrRecipeNotFound = errors.New("recipe not found")

const recipeExt = ".yaml"

// RecipeManager handles storage and retrieval of recipes. Recipes are kept
// in memory and, when a store path is set, as one YAML file each.
type RecipeManager struct {
	recipes   map[string]*Recipe
	storePath string
	mu        sync.RWMutex

	// Audit receives recipe_saved and pipeline_step events when set.
	Audit *logging.AuditLogger
}

// NewRecipeManager creates a new recipe manager
func NewRecipeManager(storePath string) *RecipeManager {
	return &RecipeManager{
		recipes:   make(map[string]*Recipe),
		storePath: storePath,
	}
}

// SaveRecipe stores a recipe, assigning an ID on first save
func (rm *RecipeManager) SaveRecipe(recipe *Recipe) error {
	if recipe == nil || strings.TrimSpace(recipe.Name) == "" {
		return fmt.Errorf("recipe name cannot be empty")
	}
	for i, step := range recipe.Pipeline.Operations {
		if _, ok := GetOperation(step.Name); !ok {
			return fmt.Errorf("%w at step %d: %s", ErrUnknownOperation, i, step.Name)
		}
	}
	if recipe.ID == "" {
		recipe.ID = uuid.NewString()
	} else if _, err := uuid.Parse(recipe.ID); err != nil {
		return fmt.Errorf("recipe %s: invalid id %q: %w", recipe.Name, recipe.ID, err)
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	if recipe.CreatedAt == "" {
		recipe.CreatedAt = now
	}
	recipe.UpdatedAt = now

	rm.recipes[recipe.Name] = recipe

	if rm.storePath != "" {
		if err := rm.persistRecipe(recipe); err != nil {
			return err
		}
	}
	if rm.Audit != nil {
		_ = rm.Audit.Emit(logging.AuditEvent{
			EventType: logging.EventRecipeSaved,
			Outcome:   logging.OutcomeSuccess,
			Metadata: map[string]any{
				"recipe_id": recipe.ID,
				"name":      recipe.Name,
				"steps":     len(recipe.Pipeline.Operations),
			},
		})
	}
	return nil
}

// GetRecipe retrieves a recipe by name
func (rm *RecipeManager) GetRecipe(name string) (*Recipe, bool) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	recipe, exists := rm.recipes[name]
	return recipe, exists
}

// ListRecipes returns all recipes sorted by name
func (rm *RecipeManager) ListRecipes() []*Recipe {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	recipes := make([]*Recipe, 0, len(rm.recipes))
	for _, recipe := range rm.recipes {
		recipes = append(recipes, recipe)
	}
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].Name < recipes[j].Name })
	return recipes
}

// DeleteRecipe removes a recipe
func (rm *RecipeManager) DeleteRecipe(name string) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	delete(rm.recipes, name)

	if rm.storePath != "" {
		recipePath := filepath.Join(rm.storePath, sanitizeFilename(name)+recipeExt)
		if err := os.Remove(recipePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete recipe file: %w", err)
		}
	}

	return nil
}

// RunRecipe executes the named recipe's pipeline, reversed when reverse
// is set.
func (rm *RecipeManager) RunRecipe(ctx context.Context, name string, input []byte, reverse bool) ([]byte, error) {
	recipe, ok := rm.GetRecipe(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRecipeNotFound, name)
	}
	pipeline := &recipe.Pipeline
	if reverse {
		reversed, err := pipeline.Reverse()
		if err != nil {
			return nil, fmt.Errorf("recipe %s: %w", name, err)
		}
		pipeline = reversed
	}
	return pipeline.run(ctx, input, rm.Audit)
}

// LoadRecipes loads all recipes from the store path
func (rm *RecipeManager) LoadRecipes() error {
	if rm.storePath == "" {
		return nil
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()

	if err := os.MkdirAll(rm.storePath, 0o755); err != nil {
		return fmt.Errorf("failed to create recipes directory: %w", err)
	}

	entries, err := os.ReadDir(rm.storePath)
	if err != nil {
		return fmt.Errorf("failed to read recipes directory: %w", err)
	}

	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		recipePath := filepath.Join(rm.storePath, entry.Name())
		data, err := os.ReadFile(recipePath)
		if err != nil {
			return fmt.Errorf("failed to read recipe %s: %w", entry.Name(), err)
		}

		var recipe Recipe
		if err := yaml.Unmarshal(data, &recipe); err != nil {
			return fmt.Errorf("failed to parse recipe %s: %w", entry.Name(), err)
		}
		if strings.TrimSpace(recipe.Name) == "" {
			return fmt.Errorf("recipe %s has no name", entry.Name())
		}
		if recipe.ID == "" {
			recipe.ID = uuid.NewString()
		}

		rm.recipes[recipe.Name] = &recipe
	}

	return nil
}

// persistRecipe writes a single recipe to disk
func (rm *RecipeManager) persistRecipe(recipe *Recipe) error {
	if err := os.MkdirAll(rm.storePath, 0o755); err != nil {
		return fmt.Errorf("failed to create recipes directory: %w", err)
	}

	data, err := yaml.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("failed to serialize recipe: %w", err)
	}

	recipePath := filepath.Join(rm.storePath, sanitizeFilename(recipe.Name)+recipeExt)
	if err := os.WriteFile(recipePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write recipe file: %w", err)
	}

	return nil
}

// sanitizeFilename converts a recipe name to a safe filename
func sanitizeFilename(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_':
			sb.WriteRune(r)
		case r == ' ':
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		return "recipe"
	}
	return sb.String()
}

// SearchRecipes finds recipes whose name, description or a tag contains
// query, ignoring case
func (rm *RecipeManager) SearchRecipes(query string) []*Recipe {
	q := strings.ToLower(query)
	matches := func(s string) bool { return strings.Contains(strings.ToLower(s), q) }

	results := make([]*Recipe, 0)
	for _, recipe := range rm.ListRecipes() {
		if matches(recipe.Name) || matches(recipe.Description) {
			results = append(results, recipe)
			continue
		}
		for _, tag := range recipe.Tags {
			if matches(tag) {
				results = append(results, recipe)
				break
			}
		}
	}
	return results
}
