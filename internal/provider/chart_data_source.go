package provider

import (
	"context"

	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/ankek/terraform-provider-chartkit/internal/interfaces"
)

// Ensure provider defined types fully satisfy framework interfaces.
var _ datasource.DataSource = &ChartDataSource{}
var _ datasource.DataSourceWithConfigure = &ChartDataSource{}

// ChartDataSource defines the data source implementation.
type ChartDataSource struct {
	generator interfaces.ChartGenerator
}

func NewChartDataSource() datasource.DataSource {
	return &ChartDataSource{
		generator: newGenerator(nil),
	}
}

func (d *ChartDataSource) Metadata(ctx context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_chart"
}

func (d *ChartDataSource) Schema(ctx context.Context, req datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Renders a chart image from a data file on every read.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Computed:            true,
				MarkdownDescription: "Data source identifier",
			},
			"chart_type": schema.StringAttribute{
				MarkdownDescription: chartTypeDescription,
				Required:            true,
				Validators:          chartTypeValidators(),
			},
			"data_path": schema.StringAttribute{
				MarkdownDescription: dataPathDescription,
				Required:            true,
				Validators:          pathValidators(),
			},
			"output_path": schema.StringAttribute{
				MarkdownDescription: outputPathDescription,
				Required:            true,
				Validators:          pathValidators(),
			},
			"x_column": schema.StringAttribute{
				MarkdownDescription: xColumnDescription,
				Optional:            true,
			},
			"y_column": schema.StringAttribute{
				MarkdownDescription: yColumnDescription,
				Optional:            true,
			},
			"group_column": schema.StringAttribute{
				MarkdownDescription: groupColumnDescription,
				Optional:            true,
			},
			"title": schema.StringAttribute{
				MarkdownDescription: titleDescription,
				Optional:            true,
			},
			"row_count": schema.Int64Attribute{
				MarkdownDescription: rowCountDescription,
				Computed:            true,
			},
		},
	}
}

func (d *ChartDataSource) Configure(ctx context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	if req.ProviderData == nil {
		return
	}
	d.generator = newGenerator(req.ProviderData)
}

func (d *ChartDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	var data ChartModel

	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	params := data.Params()
	tflog.Debug(ctx, "rendering chart", map[string]interface{}{
		"chart_type":  params.ChartType,
		"output_path": params.OutputPath,
	})

	// Use the generator to create the chart
	result, err := d.generator.Generate(ctx, params)
	if err != nil {
		resp.Diagnostics.AddError("Failed to render chart", err.Error())
		return
	}

	data.RowCount = types.Int64Value(result.RowCount)
	data.ID = types.StringValue(chartID(params))

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}
