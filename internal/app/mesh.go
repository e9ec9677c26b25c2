package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// trianglesToMesh converts local-frame triangles to a raylib mesh with baked lighting
func trianglesToMesh(triangles []geometry.Triangle) rl.Mesh {
	triangleCount := len(triangles)
	vertexCount := triangleCount * 3

	mesh := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	vertices := make([]float32, 0, vertexCount*3)
	normals := make([]float32, 0, vertexCount*3)
	texcoords := make([]float32, 0, vertexCount*2)
	colors := make([]uint8, 0, vertexCount*4)

	// Light direction for baked lighting
	lightDir := geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()
	uv := [3][2]float32{{0, 0}, {1, 0}, {0, 1}}

	for _, triangle := range triangles {
		normal := triangle.CalculateNormal()

		// Min 30% ambient, max 100% diffuse
		light := math.Max(0.3, -normal.Dot(lightDir))
		base := 200.0
		r := uint8(base * light * 0.5)
		g := uint8(base * light * 0.6)
		b := uint8(base * light)

		for i, v := range triangle.Vertices() {
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, float32(normal.X), float32(normal.Y), float32(normal.Z))
			texcoords = append(texcoords, uv[i][0], uv[i][1])
			colors = append(colors, r, g, b, 255)
		}
	}

	if len(vertices) > 0 {
		mesh.Vertices = &vertices[0]
		mesh.Normals = &normals[0]
		mesh.Texcoords = &texcoords[0]
		mesh.Colors = &colors[0]
	}

	// Upload mesh data to GPU
	rl.UploadMesh(&mesh, false)

	return mesh
}

// toMatrix converts a row-major transform into raylib's matrix layout
func toMatrix(t geometry.Transform) rl.Matrix {
	m := t.M
	return rl.Matrix{
		M0: float32(m[0]), M4: float32(m[1]), M8: float32(m[2]), M12: float32(m[3]),
		M1: float32(m[4]), M5: float32(m[5]), M9: float32(m[6]), M13: float32(m[7]),
		M2: float32(m[8]), M6: float32(m[9]), M10: float32(m[10]), M14: float32(m[11]),
		M3: float32(m[12]), M7: float32(m[13]), M11: float32(m[14]), M15: float32(m[15]),
	}
}
