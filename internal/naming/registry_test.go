package naming

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryCollisions(t *testing.T) {
	r := NewRegistry()
	r.Collect("operations", "GetPetStore", "GET /pet_store")
	r.Collect("operations", "GetPetStore", "GET /pet-store")
	r.Collect("operations", "ListPets", "GET /pets")
	r.Collect("definitions", "Pet", "definitions/Pet")

	collisions := r.Collisions()
	require.Len(t, collisions, 1)
	require.Equal(t, "operations", collisions[0].Group)
	require.Equal(t, "GetPetStore", collisions[0].Name)
	require.Equal(t, []string{"GET /pet_store", "GET /pet-store"}, collisions[0].Origins)
	require.Contains(t, collisions[0].String(), `"GetPetStore"`)
}

func TestRegistryNoCollisions(t *testing.T) {
	r := NewRegistry()
	r.Collect("definitions", "Pet", "definitions/Pet")
	r.Collect("operations", "Pet", "GET /pet")
	require.Empty(t, r.Collisions())
}
