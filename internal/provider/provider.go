// Package provider implements the Terraform provider for chartkit chart
// rendering. It exposes a chartkit_chart resource and data source that render a
// chart from a data file.
package provider

import (
	"context"

	"github.com/hashicorp/terraform-plugin-framework-validators/int64validator"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/provider"
	"github.com/hashicorp/terraform-plugin-framework/provider/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/ankek/terraform-provider-chartkit/internal/dataset"
	"github.com/ankek/terraform-provider-chartkit/internal/generator"
)

// Ensure ChartkitProvider satisfies various provider interfaces.
var _ provider.Provider = &ChartkitProvider{}

// ChartkitProvider defines the provider implementation.
type ChartkitProvider struct {
	// version is set to the provider version on release, "dev" when the
	// provider is built and ran locally, and "test" when running acceptance
	// testing.
	version string
}

// ChartkitProviderModel describes the provider data model.
type ChartkitProviderModel struct {
	// HTTPRetryMax bounds retries when data_path is an http(s) URL.
	HTTPRetryMax types.Int64 `tfsdk:"http_retry_max"`
}

func (p *ChartkitProvider) Metadata(ctx context.Context, req provider.MetadataRequest, resp *provider.MetadataResponse) {
	resp.TypeName = "chartkit"
	resp.Version = p.version
}

func (p *ChartkitProvider) Schema(ctx context.Context, req provider.SchemaRequest, resp *provider.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "The chartkit provider renders charts (boxplot, scatter, line, bar, histogram, violin, density, heatmap, ridgeline, pie) from JSON, CSV or XLSX data files.",
		Attributes: map[string]schema.Attribute{
			"http_retry_max": schema.Int64Attribute{
				Description: "Maximum number of retries when fetching a data file over HTTP. Default is 3.",
				Optional:    true,
				Validators: []validator.Int64{
					int64validator.Between(1, 10),
				},
			},
		},
	}
}

func (p *ChartkitProvider) Configure(ctx context.Context, req provider.ConfigureRequest, resp *provider.ConfigureResponse) {
	var data ChartkitProviderModel

	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)

	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Debug(ctx, "configured chartkit provider", map[string]interface{}{
		"http_retry_max": data.HTTPRetryMax.ValueInt64(),
	})

	// Make settings available to resources and data sources
	resp.DataSourceData = &data
	resp.ResourceData = &data
}

func (p *ChartkitProvider) Resources(ctx context.Context) []func() resource.Resource {
	return []func() resource.Resource{
		NewChartResource,
	}
}

func (p *ChartkitProvider) DataSources(ctx context.Context) []func() datasource.DataSource {
	return []func() datasource.DataSource{
		NewChartDataSource,
	}
}

func New(version string) func() provider.Provider {
	return func() provider.Provider {
		return &ChartkitProvider{
			version: version,
		}
	}
}

// newGenerator builds the generator used by resources and data sources,
// applying provider settings when the provider has been configured.
func newGenerator(providerData any) *generator.Generator {
	gen := generator.New(nil)
	if cfg, ok := providerData.(*ChartkitProviderModel); ok && cfg != nil {
		if !cfg.HTTPRetryMax.IsNull() && !cfg.HTTPRetryMax.IsUnknown() {
			gen.Loader = &dataset.Loader{RetryMax: int(cfg.HTTPRetryMax.ValueInt64())}
		}
	}
	return gen
}
