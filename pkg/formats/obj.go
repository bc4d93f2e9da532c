// Package formats implements parsers for the model file formats the viewer
// loads. Parsers validate indices up front so the renderer can treat meshes
// as trusted, immutable data.
package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// OBJ holds the attribute arrays and faces of a parsed Wavefront OBJ file.
// Faces are triangulated; indices are zero-based and validated.
type OBJ struct {
	Positions [][3]float32
	TexCoords [][2]float32
	Normals   [][3]float32
	Faces     []Face
}

// Face is a triangle referencing the attribute arrays by index.
// UV and Normal are -1 when the face carries no such attribute.
type Face struct {
	Position [3]int
	UV       [3]int
	Normal   [3]int
}

// ParseOBJ reads a Wavefront OBJ model. Supported statements are v, vt, vn
// and f; everything else (objects, groups, materials, smoothing) is skipped.
// Faces with more than three corners are fan-triangulated.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			obj.Positions = append(obj.Positions, p)

		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: texcoord needs 2 components", lineNo)
			}
			u, err := parseFloat(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: texcoord: %w", lineNo, err)
			}
			v, err := parseFloat(fields[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: texcoord: %w", lineNo, err)
			}
			obj.TexCoords = append(obj.TexCoords, [2]float32{u, v})

		case "vn":
			n, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			obj.Normals = append(obj.Normals, n)

		case "f":
			if err := obj.parseFace(fields[1:], lineNo); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading obj: %w", err)
	}

	if len(obj.Positions) == 0 {
		return nil, fmt.Errorf("obj contains no vertices")
	}
	if len(obj.Faces) == 0 {
		return nil, fmt.Errorf("obj contains no faces")
	}

	return obj, nil
}

// parseFace appends the fan-triangulation of one f statement.
func (o *OBJ) parseFace(refs []string, lineNo int) error {
	if len(refs) < 3 {
		return fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
	}

	type corner struct{ p, t, n int }
	corners := make([]corner, len(refs))
	for i, ref := range refs {
		p, t, n, err := o.parseRef(ref)
		if err != nil {
			return fmt.Errorf("line %d: face: %w", lineNo, err)
		}
		corners[i] = corner{p, t, n}
	}

	for i := 2; i < len(corners); i++ {
		c0, c1, c2 := corners[0], corners[i-1], corners[i]
		o.Faces = append(o.Faces, Face{
			Position: [3]int{c0.p, c1.p, c2.p},
			UV:       [3]int{c0.t, c1.t, c2.t},
			Normal:   [3]int{c0.n, c1.n, c2.n},
		})
	}
	return nil
}

// parseRef resolves one v/vt/vn reference triple. OBJ indices are 1-based;
// negative indices count back from the end of the respective array.
func (o *OBJ) parseRef(ref string) (p, t, n int, err error) {
	parts := strings.Split(ref, "/")
	t, n = -1, -1

	p, err = resolveIndex(parts[0], len(o.Positions))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("vertex index %q: %w", parts[0], err)
	}

	if len(parts) > 1 && parts[1] != "" {
		t, err = resolveIndex(parts[1], len(o.TexCoords))
		if err != nil {
			return 0, 0, 0, fmt.Errorf("texcoord index %q: %w", parts[1], err)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		n, err = resolveIndex(parts[2], len(o.Normals))
		if err != nil {
			return 0, 0, 0, fmt.Errorf("normal index %q: %w", parts[2], err)
		}
	}
	return p, t, n, nil
}

// resolveIndex converts a 1-based (or negative) OBJ index into a zero-based
// index, rejecting anything outside the array parsed so far.
func resolveIndex(s string, length int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case idx > 0:
		idx--
	case idx < 0:
		idx += length
	default:
		return 0, fmt.Errorf("index 0 is not valid")
	}
	if idx < 0 || idx >= length {
		return 0, fmt.Errorf("index out of range (have %d entries)", length)
	}
	return idx, nil
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}

func parseFloats3(fields []string) ([3]float32, error) {
	var out [3]float32
	if len(fields) < 3 {
		return out, fmt.Errorf("need 3 components, have %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := parseFloat(fields[i])
		if err != nil {
			return out, err
		}
		out[i] = f
	}
	return out, nil
}
