package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_Presence(t *testing.T) {
	var req QuestionRequest
	body := `{"text": "What is a goroutine?", "points": 0, "imageUrl": null}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.True(t, req.Text.HasValue())
	assert.Equal(t, "What is a goroutine?", req.Text.Value)

	assert.True(t, req.Points.Present)
	assert.Equal(t, FlexInt(0), req.Points.Value)

	assert.True(t, req.ImageURL.Present)
	assert.True(t, req.ImageURL.Null)
	assert.Nil(t, req.ImageURL.Ptr())

	assert.False(t, req.ExamID.Present)
	assert.False(t, req.Options.Present)
}

func TestOptional_FalseIsPresent(t *testing.T) {
	var req ExamRequest
	require.NoError(t, json.Unmarshal([]byte(`{"isActive": false}`), &req))

	assert.True(t, req.IsActive.HasValue())
	assert.False(t, req.IsActive.Value)
	assert.False(t, req.Title.Present)
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    FlexInt
		wantErr bool
	}{
		{"number", `60`, 60, false},
		{"numeric string", `"90"`, 90, false},
		{"padded string", `" 15 "`, 15, false},
		{"fraction truncated", `12.9`, 12, false},
		{"negative", `-3`, -3, false},
		{"word", `"sixty"`, 0, true},
		{"empty string", `""`, 0, true},
		{"bool", `true`, 0, true},
		{"column limit", `9999999999`, 9999999999, false},
		{"above column limit", `10000000000`, 0, true},
		{"exponent above column limit", `1e10`, 0, true},
		{"beyond int64", `"99999999999999999999"`, 0, true},
		{"negative beyond limit", `-1e12`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n FlexInt
			err := json.Unmarshal([]byte(tt.input), &n)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestFlexFloat(t *testing.T) {
	var grades map[string]FlexFloat
	require.NoError(t, json.Unmarshal([]byte(`{"q1": 7.5, "q2": "8.25", "q3": 0}`), &grades))

	assert.Equal(t, FlexFloat(7.5), grades["q1"])
	assert.Equal(t, FlexFloat(8.25), grades["q2"])
	assert.Equal(t, FlexFloat(0), grades["q3"])

	var bad FlexFloat
	assert.Error(t, json.Unmarshal([]byte(`"NaN"`), &bad))
}

func TestFlexString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  FlexString
	}{
		{"string", `"B"`, "B"},
		{"escaped string", `"say \"hi\""`, `say "hi"`},
		{"option index", `2`, "2"},
		{"fraction", `2.50`, "2.50"},
		{"bool", `true`, "true"},
		{"multiple choice", `[ "a", "b" ]`, `["a","b"]`},
		{"object", `{"x": 1}`, `{"x":1}`},
		{"null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s FlexString
			require.NoError(t, json.Unmarshal([]byte(tt.input), &s))
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestToDomainAnswers(t *testing.T) {
	var req CreateResultRequest
	body := `{"answers": [{"questionId": "q1", "answer": "B", "manualGrade": "4"}, {"questionId": "q2", "answer": "true"}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	answers := ToDomainAnswers(req.Answers)
	require.Len(t, answers, 2)
	require.NotNil(t, answers[0].ManualGrade)
	assert.Equal(t, 4.0, *answers[0].ManualGrade)
	assert.Nil(t, answers[1].ManualGrade)
	assert.Equal(t, "q2", answers[1].QuestionID)
}

func TestToDomainAnswers_NonStringValues(t *testing.T) {
	var req CreateResultRequest
	body := `{"answers": [{"questionId": "q1", "answer": 2}, {"questionId": "q2", "answer": ["a", "b"]}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	answers := ToDomainAnswers(req.Answers)
	require.Len(t, answers, 2)
	assert.Equal(t, "2", answers[0].Answer)
	assert.Equal(t, `["a","b"]`, answers[1].Answer)
}
