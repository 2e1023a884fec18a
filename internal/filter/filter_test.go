package filter

import (
	"reflect"
	"testing"
)

const postsJSON = `[
  {"id": 1, "userId": 1, "title": "a", "body": "x"},
  {"id": 2, "userId": 1, "title": "b", "body": "y"},
  {"id": 11, "userId": 2, "title": "c", "body": "z"}
]`

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		query  string
		want   interface{}
	}{
		{
			name:  "project titles",
			query: "[].title",
			want:  []interface{}{"a", "b", "c"},
		},
		{
			name:   "filter by user then project ids",
			filter: "[?userId==`2`]",
			query:  "[].id",
			want:   []interface{}{float64(11)},
		},
		{
			name:  "missing field is null",
			query: "[0].missing",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply([]byte(postsJSON), tt.filter, tt.query)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestApply_Errors(t *testing.T) {
	if _, err := Apply([]byte("not json"), "", "[]"); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := Apply([]byte(postsJSON), "", "[?"); err == nil {
		t.Error("expected error for invalid expression")
	}
}

func TestNormalize(t *testing.T) {
	type row struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	}

	data, err := Normalize([]row{{ID: 3, Title: "t"}})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	got, err := ApplyValue(data, "", "[0].id")
	if err != nil {
		t.Fatalf("ApplyValue() error = %v", err)
	}
	if got != float64(3) {
		t.Errorf("got %#v, want 3", got)
	}
}

func TestIsValidJMESPath(t *testing.T) {
	if !IsValidJMESPath("[].id") {
		t.Error("[].id should be valid")
	}
	if IsValidJMESPath("[?") {
		t.Error("[? should be invalid")
	}
}
