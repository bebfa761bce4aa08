package provider

import (
	"crypto/sha256"
	"fmt"

	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"

	"github.com/ankek/terraform-provider-chartkit/internal/chart"
	"github.com/ankek/terraform-provider-chartkit/internal/config"
)

// ChartModel describes the chartkit_chart resource and data source data model.
type ChartModel struct {
	ID          types.String `tfsdk:"id"`
	ChartType   types.String `tfsdk:"chart_type"`
	DataPath    types.String `tfsdk:"data_path"`
	OutputPath  types.String `tfsdk:"output_path"`
	XColumn     types.String `tfsdk:"x_column"`
	YColumn     types.String `tfsdk:"y_column"`
	GroupColumn types.String `tfsdk:"group_column"`
	Title       types.String `tfsdk:"title"`
	RowCount    types.Int64  `tfsdk:"row_count"`
}

// Params converts the model to render parameters. Null attributes become empty.
func (m ChartModel) Params() config.Params {
	return config.Params{
		ChartType:   m.ChartType.ValueString(),
		DataPath:    m.DataPath.ValueString(),
		OutputPath:  m.OutputPath.ValueString(),
		XColumn:     m.XColumn.ValueString(),
		YColumn:     m.YColumn.ValueString(),
		GroupColumn: m.GroupColumn.ValueString(),
		Title:       m.Title.ValueString(),
	}
}

// chartID derives a stable identifier from what determines the rendered image.
func chartID(p config.Params) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s_%s_%s_%s_%s_%s_%s",
		p.ChartType, p.DataPath, p.OutputPath, p.XColumn, p.YColumn, p.GroupColumn, p.Title)))
	return fmt.Sprintf("%x", hash[:8])
}

const (
	chartTypeDescription   = "Chart type: one of `boxplot`, `scatter`, `line`, `bar`, `histogram`, `violin`, `density`, `heatmap`, `ridgeline` or `pie`."
	dataPathDescription    = "Path to the data file: a JSON array of row objects, a CSV file or an XLSX workbook. An http(s) URL is fetched with retries."
	outputPathDescription  = "Path where the chart image will be saved. The extension selects the format: .png (default), .jpg, .jpeg, .tif, .tiff or .bmp."
	xColumnDescription     = "Column plotted on the x axis. Required by scatter, line, bar, histogram, density, ridgeline and pie."
	yColumnDescription     = "Column plotted on the y axis. Required by boxplot, scatter, line, bar, violin and ridgeline."
	groupColumnDescription = "Column whose values split the data into series or categories."
	titleDescription       = "Chart title. Defaults to the chart type followed by \"Chart\", e.g. \"Pie Chart\"."
	rowCountDescription    = "Number of data rows loaded."
)

func chartTypeValidators() []validator.String {
	return []validator.String{
		stringvalidator.OneOf(chart.TypeNames()...),
	}
}

func pathValidators() []validator.String {
	return []validator.String{
		stringvalidator.LengthAtLeast(1),
	}
}
