package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_Decode(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want List[Category]
	}{
		{
			name: "bare array",
			in:   `[{"id":1,"name":"五金","code":"HW"}]`,
			want: List[Category]{Results: []Category{{ID: 1, Name: "五金", Code: "HW"}}, Count: 1},
		},
		{
			name: "page",
			in:   `{"count":23,"next":"http://x/api/inventory/categories/?page=2","previous":null,"results":[{"id":2,"name":"耗材","code":"CS"}]}`,
			want: List[Category]{
				Results: []Category{{ID: 2, Name: "耗材", Code: "CS"}},
				Paged:   true,
				Count:   23,
				Next:    "http://x/api/inventory/categories/?page=2",
			},
		},
		{
			name: "null",
			in:   `null`,
			want: List[Category]{Results: []Category{}},
		},
		{
			name: "empty array",
			in:   `[]`,
			want: List[Category]{Results: []Category{}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got List[Category]
			require.NoError(t, json.Unmarshal([]byte(tc.in), &got))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("List mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestList_DecodeRejectsNonLists(t *testing.T) {
	var l List[Item]
	assert.Error(t, json.Unmarshal([]byte(`{"id":1}`), &l))
	assert.Error(t, json.Unmarshal([]byte(`"items"`), &l))
}

func TestList_MarshalKeepsShape(t *testing.T) {
	bare := List[int]{Results: []int{1, 2}, Count: 2}
	b, err := json.Marshal(bare)
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, string(b))

	paged := List[int]{Results: []int{1}, Paged: true, Count: 11, Next: "n"}
	b, err = json.Marshal(paged)
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":11,"next":"n","previous":null,"results":[1]}`, string(b))
}

func TestList_Pages(t *testing.T) {
	assert.Equal(t, 0, List[int]{}.Pages(10))
	assert.Equal(t, 1, List[int]{Count: 10}.Pages(10))
	assert.Equal(t, 3, List[int]{Count: 21}.Pages(10))
	assert.Equal(t, 3, List[int]{Count: 21}.Pages(0), "zero page size uses the backend default")
	assert.True(t, List[int]{Next: "x"}.HasMore())
}
