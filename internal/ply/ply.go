// Package ply writes processed point clouds as binary little endian PLY
// files, the interchange format external 3D tools ingest directly.
package ply

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// Vertex is one PLY vertex record: render-space position plus encoded color.
type Vertex struct {
	X float32
	Y float32
	Z float32
	R uint8
	G uint8
	B uint8
}

// WritePlyFile writes the vertices to filePath, replacing any existing file.
func WritePlyFile(filePath string, verts []Vertex) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	header := "ply\n" +
		"format binary_little_endian 1.0\n" +
		fmt.Sprintf("element vertex %d\n", len(verts)) +
		"property float x\n" +
		"property float y\n" +
		"property float z\n" +
		"property uchar red\n" +
		"property uchar green\n" +
		"property uchar blue\n" +
		"end_header\n"
	if _, err := w.WriteString(header); err != nil {
		return err
	}

	record := make([]byte, 15)
	for _, v := range verts {
		binary.LittleEndian.PutUint32(record[0:4], math.Float32bits(v.X))
		binary.LittleEndian.PutUint32(record[4:8], math.Float32bits(v.Y))
		binary.LittleEndian.PutUint32(record[8:12], math.Float32bits(v.Z))
		record[12] = v.R
		record[13] = v.G
		record[14] = v.B
		if _, err := w.Write(record); err != nil {
			return err
		}
	}

	return w.Flush()
}
