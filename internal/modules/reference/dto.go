package reference

import "avenstudio/internal/contract"

const Name = "reference"

func route(action string) contract.Route { return contract.Route{Module: Name, Action: action} }

// Request asks for one static reference table.
type Request struct {
	Action string `json:"-"`
}

func (r Request) Route() contract.Route { return route(r.Action) }

type PhaseRequest struct {
	ID string `json:"id"`
}

func (PhaseRequest) Route() contract.Route { return route("phase") }

type Duration struct {
	Weeks  int `json:"weeks"`
	Months int `json:"months"`
	Phases int `json:"phases"`
}
