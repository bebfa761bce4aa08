package interfaces

import (
	"testing"
)

func TestGenerateResultStruct(t *testing.T) {
	result := GenerateResult{
		ChartType:  "pie",
		RowCount:   42,
		OutputPath: "/path/to/output.png",
	}

	if result.RowCount != 42 {
		t.Errorf("Expected RowCount 42, got %d", result.RowCount)
	}
	if result.ChartType != "pie" {
		t.Errorf("Expected ChartType 'pie', got '%s'", result.ChartType)
	}
	if result.OutputPath != "/path/to/output.png" {
		t.Errorf("Expected OutputPath '/path/to/output.png', got '%s'", result.OutputPath)
	}
}

func TestInterfacesAreDefined(t *testing.T) {
	// This test verifies that all interfaces are properly defined
	// by checking that we can reference them without compile errors

	var _ TableLoader
	var _ ChartRenderer
	var _ PathValidator
	var _ ChartGenerator

	t.Log("All interfaces are properly defined")
}
