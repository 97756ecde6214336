package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   ProfileInput
		wantErr string
	}{
		{name: "valid", input: ProfileInput{Name: "Ada", Email: "ada@x.com"}},
		{name: "missing name", input: ProfileInput{Email: "ada@x.com"}, wantErr: "name is required"},
		{name: "bad email", input: ProfileInput{Name: "Ada", Email: "ada"}, wantErr: "email must be a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, ValidationMessage(err))
		})
	}
}

func TestProfileInput_NormalizeEncodesEmptyCollections(t *testing.T) {
	input := ProfileInput{Name: "Ada", Email: "ada@x.com"}
	input.Normalize()

	data, err := json.Marshal(input)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"skills":[]`)
	assert.Contains(t, string(data), `"links":{}`)
	assert.NotContains(t, string(data), "null")
}

func TestProfileUpdate_ApplyOnlyProvidedFields(t *testing.T) {
	input := ProfileInput{
		Name:   "Ada",
		Email:  "ada@x.com",
		Phone:  "555",
		Skills: []string{"Python"},
	}
	var update ProfileUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"phone":"","skills":["Python","C++"]}`), &update))

	update.Apply(&input)

	assert.Equal(t, "Ada", input.Name)
	assert.Equal(t, "ada@x.com", input.Email)
	assert.Equal(t, "", input.Phone)
	assert.Equal(t, []string{"Python", "C++"}, input.Skills)
	assert.NotNil(t, input.Experience)
}

func TestUserProfile_JSONFlattensInput(t *testing.T) {
	profile := UserProfile{ID: 7, ProfileInput: ProfileInput{Name: "Ada", Email: "ada@x.com"}}

	data, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":7`)
	assert.Contains(t, string(data), `"name":"Ada"`)

	var decoded UserProfile
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, int64(7), decoded.ID)
	assert.Equal(t, "Ada", decoded.Name)
}
