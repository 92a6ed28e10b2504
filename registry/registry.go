package registry

import (
	dataErrors "bikeshare/domain/errors"
	"bikeshare/utils"
	"fmt"
	"path/filepath"
	"sort"
)

// Registry maps each city to the location of its trips dataset. It cannot change once built
// + dataDir: directory used to resolve relative dataset paths
// + cities: map with the following structure: {normalized city name: dataset path}
type Registry struct {
	dataDir string
	cities  map[string]string
}

func New(dataDir string, cities map[string]string) *Registry {
	citiesMap := make(map[string]string, len(cities))
	for city, datasetPath := range cities {
		citiesMap[utils.NormalizeValue(city)] = datasetPath
	}

	return &Registry{
		dataDir: dataDir,
		cities:  citiesMap,
	}
}

// Lookup returns the dataset location of the given city
func (r *Registry) Lookup(city string) (string, error) {
	datasetPath, ok := r.cities[utils.NormalizeValue(city)]
	if !ok {
		return "", fmt.Errorf("%w: %s", dataErrors.ErrUnknownCity, city)
	}

	if filepath.IsAbs(datasetPath) || r.dataDir == "" {
		return datasetPath, nil
	}
	return filepath.Join(r.dataDir, datasetPath), nil
}

// Cities returns the registered city names sorted alphabetically
func (r *Registry) Cities() []string {
	cities := make([]string, 0, len(r.cities))
	for city := range r.cities {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	return cities
}
