package seeding

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpelletier0/firestore-data-seeder/internal/domain/entity"
)

func makePool(n int) []entity.IdentityUser {
	pool := make([]entity.IdentityUser, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, entity.IdentityUser{
			UID:         fmt.Sprintf("uid-%03d", i),
			DisplayName: fmt.Sprintf("Usuario %d", i),
		})
	}
	return pool
}

func makeCompanies(n int) []entity.StoreCompany {
	companies := make([]entity.StoreCompany, 0, n)
	for i := 0; i < n; i++ {
		companies = append(companies, entity.StoreCompany{
			UID:  fmt.Sprintf("comp-%02d", i),
			Name: fmt.Sprintf("Empresa %d", i),
		})
	}
	return companies
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades de partition sobre muchas semillas: conservación del pool, cota
// por empresa y ausencia de duplicados. La distribución sesgada a la cola y no
// exhaustiva es contractual; aquí no se verifica uniformidad.
// ──────────────────────────────────────────────────────────────────────────────

func TestPartition_ConservacionDelPool(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		pool := makePool(20)
		companies := makeCompanies(4)

		remaining, draws := partition(companies, pool, rand.New(rand.NewSource(seed)))

		total := len(remaining)
		for _, draw := range draws {
			total += len(draw)
		}
		require.Equal(t, len(pool), total,
			"semilla %d: |pool antes| == |pool después| + suma de extracciones", seed)
	}
}

func TestPartition_CotaPorEmpresa(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		pool := makePool(17)
		companies := makeCompanies(5)

		_, draws := partition(companies, pool, rand.New(rand.NewSource(seed)))

		restante := len(pool)
		for i, draw := range draws {
			require.LessOrEqual(t, len(draw), restante/2,
				"semilla %d, empresa %d: la extracción no supera la mitad del pool restante", seed, i)
			restante -= len(draw)
		}
	}
}

func TestPartition_SinDuplicadosEntreEmpresas(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		_, draws := partition(makeCompanies(6), makePool(30), rand.New(rand.NewSource(seed)))

		vistos := make(map[string]struct{})
		for _, draw := range draws {
			for _, u := range draw {
				_, dup := vistos[u.UID]
				require.False(t, dup, "semilla %d: uid %s asignado dos veces", seed, u.UID)
				vistos[u.UID] = struct{}{}
			}
		}
	}
}

func TestPartition_ConsumeDesdeLaCola(t *testing.T) {
	pool := makePool(10)
	companies := makeCompanies(1)

	// Buscar una semilla cuya primera extracción no sea vacía.
	encontrada := false
	for seed := int64(1); seed <= 100 && !encontrada; seed++ {
		_, draws := partition(companies, pool, rand.New(rand.NewSource(seed)))
		if len(draws[0]) == 0 {
			continue
		}
		encontrada = true
		// La primera extracción sale del final del pool, en orden inverso.
		for i, u := range draws[0] {
			assert.Equal(t, pool[len(pool)-1-i].UID, u.UID,
				"la extracción se toma de la cola, no muestreada del interior")
		}
	}
	require.True(t, encontrada, "alguna semilla en [1,100] debe producir una extracción no vacía")
}

func TestPartition_NoMutaElPoolDeEntrada(t *testing.T) {
	pool := makePool(12)
	antes := make([]entity.IdentityUser, len(pool))
	copy(antes, pool)

	partition(makeCompanies(3), pool, rand.New(rand.NewSource(7)))

	assert.Equal(t, antes, pool, "el pool de entrada es del caller; partition trabaja sobre copia propia")
}

func TestPartition_SinEmpresas(t *testing.T) {
	pool := makePool(8)

	remaining, draws := partition(nil, pool, rand.New(rand.NewSource(1)))

	assert.Len(t, remaining, len(pool), "sin empresas el pool queda íntegro")
	assert.Empty(t, draws)
}

func TestPartition_PoolVacio(t *testing.T) {
	remaining, draws := partition(makeCompanies(3), nil, rand.New(rand.NewSource(1)))

	assert.Empty(t, remaining)
	for _, draw := range draws {
		assert.Empty(t, draw, "con pool vacío toda empresa recibe extracción vacía")
	}
}

func TestPartition_Determinista(t *testing.T) {
	pool := makePool(25)
	companies := makeCompanies(4)

	r1, d1 := partition(companies, pool, rand.New(rand.NewSource(99)))
	r2, d2 := partition(companies, pool, rand.New(rand.NewSource(99)))

	assert.Equal(t, r1, r2, "misma semilla, mismo pool restante")
	assert.Equal(t, d1, d2, "misma semilla, mismas extracciones")
}
