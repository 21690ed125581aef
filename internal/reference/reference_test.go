package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avenstudio/internal/store"
)

func TestPhasesAreOrdered(t *testing.T) {
	ps := Phases()
	require.Len(t, ps, 19)
	for i, p := range ps {
		assert.Equal(t, i+1, p.Order, p.ID)
	}
}

func TestPhaseOrder(t *testing.T) {
	assert.Equal(t, 6, PhaseOrder("groundworks"))
	assert.Equal(t, UnknownPhaseOrder, PhaseOrder("moon-landing"))
}

func TestEstimateDurationWeeks(t *testing.T) {
	assert.Equal(t, 71, EstimateDurationWeeks())
}

func TestBuildingRegsSorted(t *testing.T) {
	regs := BuildingRegs()
	require.Len(t, regs, 17)
	assert.Equal(t, "A", regs[0].Code)
	assert.Equal(t, "R", regs[len(regs)-1].Code)
}

func TestDocumentTypesMatchStoredEnum(t *testing.T) {
	codes := make([]string, 0, len(documentTypes))
	for _, d := range DocumentTypes() {
		codes = append(codes, d.Code)
	}
	assert.Equal(t, store.DocumentTypes, codes)
}

func TestAccessorsReturnCopies(t *testing.T) {
	roles := ContactRoles()
	roles[0] = "Astronaut"
	assert.Equal(t, "Architect", ContactRoles()[0])
}
