package glbpack

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netisu/glbpack/scene"
)

func mustParse(t *testing.T, s string) *scene.Object {
	t.Helper()
	doc, err := scene.ParseDocument([]byte(s))
	require.NoError(t, err)
	return doc
}

func mustMarshal(t *testing.T, v scene.Value) string {
	t.Helper()
	b, err := scene.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestMutateBufferOnly(t *testing.T) {
	doc := mustParse(t, `{"asset":{"version":"2.0"},"buffers":[{"uri":"cube.bin","byteLength":840},{"uri":"extra.bin","byteLength":4}],"images":[{"uri":"t.png"}]}`)

	out, err := Mutate(doc, 840, nil, "")
	require.NoError(t, err)

	want := `{"asset":{"version":"2.0"},"buffers":[{"byteLength":840},{"uri":"extra.bin","byteLength":4}],"images":[{"uri":"t.png"}]}`
	if diff := cmp.Diff(want, mustMarshal(t, out)); diff != "" {
		t.Errorf("mutated document (-want +got):\n%s", diff)
	}
}

func TestMutateWithImage(t *testing.T) {
	doc := mustParse(t, `{"bufferViews":[{"buffer":0,"byteLength":1536}],"buffers":[{"uri":"a.bin","byteLength":1536}],"images":[{"uri":"t.png","name":"tex"}],"textures":[{"source":0}]}`)

	out, err := Mutate(doc, 1536, &Region{Offset: 1536, Length: 4096}, "image/png")
	require.NoError(t, err)

	want := `{"bufferViews":[{"buffer":0,"byteLength":1536},{"buffer":0,"byteOffset":1536,"byteLength":4096}],` +
		`"buffers":[{"byteLength":1536}],"images":[{"bufferView":1,"mimeType":"image/png"}],"textures":[{"source":0}]}`
	if diff := cmp.Diff(want, mustMarshal(t, out)); diff != "" {
		t.Errorf("mutated document (-want +got):\n%s", diff)
	}
}

func TestMutateCreatesBufferViews(t *testing.T) {
	doc := mustParse(t, `{"buffers":[{"byteLength":0}],"images":[{"uri":"t.png"}]}`)

	out, err := Mutate(doc, 0, &Region{Offset: 0, Length: 12}, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t,
		`{"buffers":[{"byteLength":0}],"images":[{"bufferView":0,"mimeType":"image/jpeg"}],"bufferViews":[{"buffer":0,"byteOffset":0,"byteLength":12}]}`,
		mustMarshal(t, out))
}

func TestMutateLeavesInputUntouched(t *testing.T) {
	src := `{"bufferViews":[{"buffer":0,"byteLength":8}],"buffers":[{"uri":"a.bin","byteLength":8}],"images":[{"uri":"t.png"}]}`
	doc := mustParse(t, src)

	_, err := Mutate(doc, 8, &Region{Offset: 8, Length: 4}, "image/png")
	require.NoError(t, err)
	assert.Equal(t, src, mustMarshal(t, doc))
}

func TestMutateErrors(t *testing.T) {
	region := &Region{Offset: 4, Length: 4}

	tests := []struct {
		name   string
		doc    string
		region *Region
		mime   string
		want   error
	}{
		{"no buffers", `{}`, nil, "", ErrMissingResource},
		{"empty buffers", `{"buffers":[]}`, nil, "", ErrMissingResource},
		{"buffers is object", `{"buffers":{}}`, nil, "", ErrMissingResource},
		{"no images", `{"buffers":[{}]}`, region, "image/png", ErrMissingResource},
		{"empty images", `{"buffers":[{}],"images":[]}`, region, "image/png", ErrMissingResource},
		{"bufferViews is string", `{"buffers":[{}],"images":[{}],"bufferViews":"x"}`, region, "image/png", ErrMissingResource},
		{"no mime", `{"buffers":[{}],"images":[{}]}`, region, "", ErrInvalidAsset},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Mutate(mustParse(t, tc.doc), 4, tc.region, tc.mime)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestMutateErrorNamesField(t *testing.T) {
	_, err := Mutate(mustParse(t, `{"buffers":[{}],"images":[]}`), 4, &Region{Offset: 4, Length: 1}, "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "images[0]")
}

func TestMutateTreatsNullBufferViewsAsAbsent(t *testing.T) {
	for name, views := range map[string]scene.Value{
		"nil array": (*scene.Array)(nil),
		"null":      scene.Null{},
	} {
		t.Run(name, func(t *testing.T) {
			doc := mustParse(t, `{"buffers":[{"uri":"a.bin","byteLength":4}],"images":[{"uri":"t.png"}]}`)
			doc.Set("bufferViews", views)

			out, err := Mutate(doc, 4, &Region{Offset: 4, Length: 4}, "image/png")
			require.NoError(t, err)
			assert.Equal(t,
				`{"buffers":[{"byteLength":4}],"images":[{"bufferView":0,"mimeType":"image/png"}],"bufferViews":[{"buffer":0,"byteOffset":4,"byteLength":4}]}`,
				mustMarshal(t, out))
		})
	}
}

func TestMutateRejectsNegativeRegion(t *testing.T) {
	doc := `{"buffers":[{}],"images":[{}]}`
	for _, r := range []*Region{{Offset: -1, Length: 4}, {Offset: 4, Length: -2}} {
		_, err := Mutate(mustParse(t, doc), 4, r, "image/png")
		assert.Error(t, err, "%+v", *r)
	}

	_, err := Mutate(mustParse(t, doc), -1, nil, "")
	assert.Error(t, err)
}
