package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExampleInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   ExampleInput
		wantErr string
	}{
		{
			name:  "valid",
			input: ExampleInput{GenerationType: GenerationColdEmail, Content: "Hello there, friend", QualityRating: 4.5},
		},
		{
			name:    "unknown type",
			input:   ExampleInput{GenerationType: "letter", Content: "Hello there, friend", QualityRating: 5},
			wantErr: "generation_type must be one of cold_email, cold_dm, application",
		},
		{
			name:    "content too short",
			input:   ExampleInput{GenerationType: GenerationColdDM, Content: "Hi", QualityRating: 5},
			wantErr: "content must be at least 10 characters",
		},
		{
			name:    "rating below range",
			input:   ExampleInput{GenerationType: GenerationColdDM, Content: "Hello there, friend", QualityRating: 0.5},
			wantErr: "quality_rating must be >= 1",
		},
		{
			name:    "rating above range",
			input:   ExampleInput{GenerationType: GenerationColdDM, Content: "Hello there, friend", QualityRating: 5.5},
			wantErr: "quality_rating must be <= 5",
		},
		{
			name:    "rating not a half step",
			input:   ExampleInput{GenerationType: GenerationApplication, Content: "Hello there, friend", QualityRating: 3.3},
			wantErr: "quality_rating must be a multiple of 0.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Equal(t, tt.wantErr, ValidationMessage(err))
		})
	}
}

func TestExampleUpdate_ApplyAndValidate(t *testing.T) {
	rating := 2.5
	title := "Short and sweet"
	update := ExampleUpdate{QualityRating: &rating, Title: &title}
	assert.NoError(t, update.Validate())

	input := ExampleInput{GenerationType: GenerationColdEmail, Content: "Hello there, friend", QualityRating: 5}
	update.Apply(&input)

	assert.Equal(t, 2.5, input.QualityRating)
	assert.Equal(t, "Short and sweet", input.Title)
	assert.Equal(t, "Hello there, friend", input.Content)

	bad := 7.0
	assert.Error(t, (&ExampleUpdate{QualityRating: &bad}).Validate())
}
