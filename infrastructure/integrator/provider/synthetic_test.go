package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyntheticGenerator_Generate(t *testing.T) {
	generator := NewSyntheticGenerator([]string{"Eletrônicos", "Vestuário"})

	records := generator.Generate(2022, 2023)

	// Um registro por categoria, por mês, por ano
	assert.Len(t, records, 2*2*12)

	for _, record := range records {
		assert.GreaterOrEqual(t, record.Year, 2022)
		assert.LessOrEqual(t, record.Year, 2023)
		assert.GreaterOrEqual(t, record.Month, 1)
		assert.LessOrEqual(t, record.Month, 12)
		assert.Positive(t, record.Quantity)
		assert.Positive(t, record.Revenue)
	}
}

func TestSyntheticGenerator_GeracaoDeterministica(t *testing.T) {
	first := NewSyntheticGenerator(nil).Generate(2021, 2023)
	second := NewSyntheticGenerator(nil).Generate(2021, 2023)

	assert.Equal(t, first, second)
}

func TestSyntheticGenerator_IntervaloInvalido(t *testing.T) {
	generator := NewSyntheticGenerator(nil)

	assert.Empty(t, generator.Generate(0, 2023))
	assert.Empty(t, generator.Generate(2023, 2022))
}

func TestSyntheticGenerator_CategoriasPadrao(t *testing.T) {
	generator := NewSyntheticGenerator(nil)

	assert.Equal(t, defaultCategories, generator.Categories())

	custom := NewSyntheticGenerator([]string{"Óculos"})
	assert.Equal(t, []string{"Óculos"}, custom.Categories())
}

func TestSyntheticGenerator_SazonalidadeDeFimDeAno(t *testing.T) {
	generator := NewSyntheticGenerator([]string{"Eletrônicos"})

	records := generator.Generate(2023, 2023)

	var january, december float64
	for _, record := range records {
		switch record.Month {
		case 1:
			january = record.Quantity
		case 12:
			december = record.Quantity
		}
	}

	// Dezembro carrega o maior fator sazonal e deve superar janeiro
	assert.Greater(t, december, january)
}
