package fixtures

import (
	"testing"
	"time"

	"github.com/niksmo/bloomora/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	data, err := Load(now)
	require.NoError(t, err)

	require.Len(t, data.Products, 8)
	monstera := data.Products[0]
	assert.Equal(t, "1", monstera.ID)
	assert.Equal(t, int64(1200), monstera.Price)
	assert.Equal(t, int64(999), monstera.EffectivePrice())
	assert.Equal(t, domain.CategoryIndoor, monstera.Category)
	assert.True(t, monstera.IsNew)
	assert.True(t, data.Products[7].IsSoldOut)
	assert.Equal(t, 9.5, data.Products[3].EcoScore)

	require.Len(t, data.Tasks, 3)
	assert.Equal(t, now, data.Tasks[0].Due)
	assert.Equal(t, now.Add(24*time.Hour), data.Tasks[2].Due)
	assert.Equal(t, domain.TaskFertilize, data.Tasks[2].Type)

	assert.Len(t, data.Posts, 3)
	assert.Len(t, data.Promos, 3)
}

func TestProducts(t *testing.T) {
	t.Run("UnknownCategory", func(t *testing.T) {
		_, err := Products([]byte(`
- id: "1"
  name: Cactus
  price: 100
  category: Desert
  difficulty: Easy
  light: Low
  water: Low
`))
		assert.ErrorIs(t, err, domain.ErrUnknownEnumValue)
	})

	t.Run("UnknownField", func(t *testing.T) {
		_, err := Products([]byte(`
- id: "1"
  name: Cactus
  colour: green
`))
		assert.Error(t, err)
	})

	t.Run("DuplicateID", func(t *testing.T) {
		_, err := Products([]byte(`
- {id: "1", name: A, price: 1, category: Pot, difficulty: Easy, light: Low, water: Low}
- {id: "1", name: B, price: 1, category: Pot, difficulty: Easy, light: Low, water: Low}
`))
		assert.ErrorIs(t, err, ErrInvalidFixture)
	})

	t.Run("EcoScoreRange", func(t *testing.T) {
		_, err := Products([]byte(`
- {id: "1", name: A, price: 1, category: Pot, difficulty: Easy, light: Low, water: Low, eco_score: 11}
`))
		assert.ErrorIs(t, err, ErrInvalidFixture)
	})
}

func TestTasks(t *testing.T) {
	_, err := Tasks([]byte(`
- {id: t1, plant_name: Fern, task_type: Repot, due_in: 1h}
`), time.Now())
	assert.ErrorIs(t, err, domain.ErrUnknownEnumValue)
}
