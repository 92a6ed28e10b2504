package station

import (
	"bikeshare/utils"
	"fmt"
	"gopkg.in/yaml.v3"
	"strings"
)

// StationData struct that contains the location of a station
type StationData struct {
	Name      string  `yaml:"name" json:"name"`
	Latitude  float64 `yaml:"latitude" json:"latitude"`
	Longitude float64 `yaml:"longitude" json:"longitude"`
}

// Directory finds stations by name. Names are compared case-insensitively
type Directory struct {
	stations map[string]StationData
}

type directoryFile struct {
	Stations []StationData `yaml:"stations"`
}

func NewDirectory(stations []StationData) *Directory {
	stationsMap := make(map[string]StationData, len(stations))
	for _, stationData := range stations {
		stationsMap[normalizeName(stationData.Name)] = stationData
	}
	return &Directory{stations: stationsMap}
}

// LoadDirectory reads a yaml file with the following structure:
// stations:
//   - name: Streeter Dr & Grand Ave
//     latitude: 41.892278
//     longitude: -87.612043
func LoadDirectory(filepath string) (*Directory, error) {
	fileBytes, err := utils.GetConfigFile(filepath)
	if err != nil {
		return nil, err
	}

	var file directoryFile
	err = yaml.Unmarshal(fileBytes, &file)
	if err != nil {
		return nil, fmt.Errorf("error parsing stations file: %s", err)
	}

	return NewDirectory(file.Stations), nil
}

// Lookup returns the station with the given name. A nil Directory knows no station
func (d *Directory) Lookup(name string) (StationData, bool) {
	if d == nil {
		return StationData{}, false
	}
	stationData, ok := d.stations[normalizeName(name)]
	return stationData, ok
}

func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.stations)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
