package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-sdf-raymarcher/pkg/renderer"
)

// Constructor builds a scene at animation time t, with optional camera overrides
type Constructor func(t float64, cameraOverrides ...renderer.CameraConfig) *Scene

// SceneInfo represents a registered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// registration pairs scene metadata with its constructor
type registration struct {
	Info SceneInfo
	New  Constructor
}

var registry = []registration{
	{
		Info: SceneInfo{
			ID:          "default",
			Name:        "Blended Blobs",
			Description: "Two blobs joined by a smooth union over a checkered ground",
			Group:       "Built-in Scenes",
		},
		New: NewDefaultScene,
	},
	{
		Info: SceneInfo{
			ID:          "columns",
			Name:        "Column Avenue",
			Description: "Infinite avenue of carved columns via domain repetition",
			Group:       "Built-in Scenes",
		},
		New: NewColumnsScene,
	},
	{
		Info: SceneInfo{
			ID:          "kaboom",
			Name:        "Kaboom",
			Description: "Fireball sphere displaced by fractal noise",
			Group:       "Built-in Scenes",
		},
		New: NewKaboomScene,
	},
}

// NewSceneByID builds a registered scene by its identifier
func NewSceneByID(id string, t float64, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	for _, reg := range registry {
		if reg.Info.ID == id {
			return reg.New(t, cameraOverrides...), nil
		}
	}
	return nil, fmt.Errorf("unknown scene: %q", id)
}

// SceneIDs returns the identifiers of all registered scenes
func SceneIDs() []string {
	ids := make([]string, 0, len(registry))
	for _, reg := range registry {
		ids = append(ids, reg.Info.ID)
	}
	return ids
}

// ListAllScenes returns all registered scenes grouped by category
func ListAllScenes() ScenesResponse {
	groupMap := make(map[string][]SceneInfo)
	for _, reg := range registry {
		groupMap[reg.Info.Group] = append(groupMap[reg.Info.Group], reg.Info)
	}

	// Built-in scenes group first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != "Built-in Scenes" {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	var response ScenesResponse
	if builtIn, exists := groupMap["Built-in Scenes"]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: "Built-in Scenes", Scenes: builtIn})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response
}
