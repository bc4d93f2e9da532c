package formats

import (
	"strings"
	"testing"
)

const quadOBJ = `
# two-triangle quad
v -1.0 -1.0 0.0
v  1.0 -1.0 0.0
v  1.0  1.0 0.0
v -1.0  1.0 0.0
vt 0.0 0.0
vt 1.0 0.0
vt 1.0 1.0
vt 0.0 1.0
vn 0.0 0.0 1.0
f 1/1/1 2/2/1 3/3/1
f 1/1/1 3/3/1 4/4/1
`

func TestParseOBJQuad(t *testing.T) {
	obj, err := ParseOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ() error = %v", err)
	}

	if len(obj.Positions) != 4 {
		t.Errorf("got %d positions, want 4", len(obj.Positions))
	}
	if len(obj.TexCoords) != 4 {
		t.Errorf("got %d texcoords, want 4", len(obj.TexCoords))
	}
	if len(obj.Normals) != 1 {
		t.Errorf("got %d normals, want 1", len(obj.Normals))
	}
	if len(obj.Faces) != 2 {
		t.Fatalf("got %d faces, want 2", len(obj.Faces))
	}

	f := obj.Faces[0]
	if f.Position != [3]int{0, 1, 2} {
		t.Errorf("face 0 positions = %v, want [0 1 2]", f.Position)
	}
	if f.UV != [3]int{0, 1, 2} {
		t.Errorf("face 0 uvs = %v, want [0 1 2]", f.UV)
	}
	if f.Normal != [3]int{0, 0, 0} {
		t.Errorf("face 0 normals = %v, want [0 0 0]", f.Normal)
	}
}

func TestParseOBJFanTriangulation(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v -1 1 0
f 1 2 3 4 5
`
	obj, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ() error = %v", err)
	}
	if len(obj.Faces) != 3 {
		t.Fatalf("pentagon should triangulate into 3 faces, got %d", len(obj.Faces))
	}
	// All fan triangles share the first corner.
	for i, f := range obj.Faces {
		if f.Position[0] != 0 {
			t.Errorf("face %d does not start the fan at vertex 0: %v", i, f.Position)
		}
	}
}

func TestParseOBJNegativeIndices(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	obj, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ() error = %v", err)
	}
	if obj.Faces[0].Position != [3]int{0, 1, 2} {
		t.Errorf("negative indices resolved to %v, want [0 1 2]", obj.Faces[0].Position)
	}
}

func TestParseOBJMissingUV(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
`
	obj, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ() error = %v", err)
	}
	if obj.Faces[0].UV != [3]int{-1, -1, -1} {
		t.Errorf("missing uvs should be -1, got %v", obj.Faces[0].UV)
	}
	if obj.Faces[0].Normal != [3]int{0, 0, 0} {
		t.Errorf("normals = %v, want [0 0 0]", obj.Faces[0].Normal)
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"no faces", "v 0 0 0\n"},
		{"index out of range", "v 0 0 0\nf 1 2 3\n"},
		{"index zero", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"bad float", "v zero 0 0\n"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseOBJ(strings.NewReader(tt.src)); err == nil {
				t.Errorf("ParseOBJ(%q) expected error, got nil", tt.name)
			}
		})
	}
}
