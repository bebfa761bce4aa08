package provider

import (
	"context"
	"os"

	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/ankek/terraform-provider-chartkit/internal/interfaces"
)

// Ensure provider defined types fully satisfy framework interfaces.
var _ resource.Resource = &ChartResource{}
var _ resource.ResourceWithConfigure = &ChartResource{}
var _ resource.ResourceWithImportState = &ChartResource{}

func NewChartResource() resource.Resource {
	return &ChartResource{
		generator: newGenerator(nil),
	}
}

// ChartResource defines the resource implementation.
type ChartResource struct {
	generator interfaces.ChartGenerator
}

func (r *ChartResource) Metadata(ctx context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_chart"
}

func (r *ChartResource) Schema(ctx context.Context, req resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Renders a chart image from a data file and keeps it in sync with the configuration.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Computed:            true,
				MarkdownDescription: "Resource identifier",
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
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

func (r *ChartResource) Configure(ctx context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	if req.ProviderData == nil {
		return
	}
	r.generator = newGenerator(req.ProviderData)
}

// render draws the chart described by data and fills in the computed attributes.
func (r *ChartResource) render(ctx context.Context, data *ChartModel) error {
	params := data.Params()
	tflog.Debug(ctx, "rendering chart", map[string]interface{}{
		"chart_type":  params.ChartType,
		"data_path":   params.DataPath,
		"output_path": params.OutputPath,
	})

	result, err := r.generator.Generate(ctx, params)
	if err != nil {
		return err
	}

	data.RowCount = types.Int64Value(result.RowCount)
	data.ID = types.StringValue(chartID(params))
	tflog.Trace(ctx, "rendered chart", map[string]interface{}{"row_count": result.RowCount})
	return nil
}

func (r *ChartResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	var data ChartModel

	resp.Diagnostics.Append(req.Plan.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	if err := r.render(ctx, &data); err != nil {
		resp.Diagnostics.AddError("Failed to render chart", err.Error())
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

func (r *ChartResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	var data ChartModel

	resp.Diagnostics.Append(req.State.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	// Check if output file still exists
	if _, err := os.Stat(data.OutputPath.ValueString()); os.IsNotExist(err) {
		tflog.Info(ctx, "chart output removed outside of terraform", map[string]interface{}{
			"output_path": data.OutputPath.ValueString(),
		})
		resp.State.RemoveResource(ctx)
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

func (r *ChartResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	var data ChartModel

	resp.Diagnostics.Append(req.Plan.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	// Re-render the chart with the updated configuration
	if err := r.render(ctx, &data); err != nil {
		resp.Diagnostics.AddError("Failed to render chart", err.Error())
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

func (r *ChartResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	var data ChartModel

	resp.Diagnostics.Append(req.State.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	// The rendered image is left on disk.
	tflog.Debug(ctx, "removing chart from state", map[string]interface{}{
		"output_path": data.OutputPath.ValueString(),
	})
}

func (r *ChartResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	resource.ImportStatePassthroughID(ctx, path.Root("id"), req, resp)
}
