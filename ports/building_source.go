package ports

import "omsim/domain/radon"

// BuildingSource loads the recorded room series of one building
type BuildingSource interface {
	ReadBuilding() (*radon.Building, error)
}
