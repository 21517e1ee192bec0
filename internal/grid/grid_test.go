package grid

import "testing"

func TestCellCount(t *testing.T) {
	if CellCount != 2097152 {
		t.Errorf("CellCount = %d, want 2097152", CellCount)
	}
	if WorkgroupSize != 256 {
		t.Errorf("WorkgroupSize = %d, want 256", WorkgroupSize)
	}
}

func TestRow(t *testing.T) {
	flat := make([]float32, CellCount)
	flat[Width] = 1
	flat[2*Width-1] = 2

	row := Row(flat, 1)
	if len(row) != Width {
		t.Fatalf("len(Row) = %d, want %d", len(row), Width)
	}
	if row[0] != 1 || row[Width-1] != 2 {
		t.Errorf("Row(1) endpoints = %v, %v, want 1, 2", row[0], row[Width-1])
	}
}
