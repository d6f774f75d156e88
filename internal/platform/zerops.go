package platform

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/zeropsio/zerops-go/dto/input/body"
	"github.com/zeropsio/zerops-go/dto/output"
	"github.com/zeropsio/zerops-go/sdk"
	"github.com/zeropsio/zerops-go/sdkBase"
	"github.com/zeropsio/zerops-go/types"
)

// Compile-time interface check.
var _ InstanceCounter = (*ZeropsCounter)(nil)

// ZeropsCounter counts active services of a Zerops project using the zerops-go SDK.
// It stands in for listVirtualMachines when guest workloads run on Zerops.
type ZeropsCounter struct {
	handler   sdk.Handler
	projectID string

	mu       sync.Mutex // guards cachedID; a failed lookup is retried on the next call
	cachedID string
}

// NewZeropsCounter creates a counter authenticated with token.
// An empty projectID makes the counter discover the token's only project.
func NewZeropsCounter(token, apiHost, projectID string) (*ZeropsCounter, error) {
	if token == "" {
		return nil, NewPlatformError(ErrAuthRequired, "Zerops token is empty", "Set FIZZCHECK_ZEROPS_TOKEN")
	}
	endpoint := apiHost
	if !strings.HasPrefix(endpoint, "http") {
		endpoint = "https://" + endpoint
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}

	httpClient := &http.Client{Timeout: DefaultAPITimeout}
	config := sdkBase.DefaultConfig(sdkBase.WithCustomEndpoint(endpoint))
	handler := sdk.New(config, httpClient)
	handler = sdk.AuthorizeSdk(handler, token)

	return &ZeropsCounter{handler: handler, projectID: projectID}, nil
}

// CountInstances returns the number of running services in the project.
func (z *ZeropsCounter) CountInstances(ctx context.Context) (int, error) {
	clientID, err := z.getClientID(ctx)
	if err != nil {
		return 0, err
	}
	projectID, err := z.resolveProject(ctx, clientID)
	if err != nil {
		return 0, err
	}
	services, err := z.listServices(ctx, clientID, projectID)
	if err != nil {
		return 0, err
	}
	return countActive(services), nil
}

func countActive(services []ServiceStack) int {
	n := 0
	for i := range services {
		if services[i].IsActive() {
			n++
		}
	}
	return n
}

// getClientID returns the cached clientId, fetching it on first use.
func (z *ZeropsCounter) getClientID(ctx context.Context) (string, error) {
	z.mu.Lock()
	defer z.mu.Unlock()
	if z.cachedID != "" {
		return z.cachedID, nil
	}

	resp, err := z.handler.GetUserInfo(ctx)
	if err != nil {
		return "", mapSDKError(err, "auth")
	}
	out, err := resp.Output()
	if err != nil {
		return "", mapSDKError(err, "auth")
	}
	if len(out.ClientUserList) == 0 {
		return "", NewPlatformError(ErrTokenNoProject, "Zerops token has no client access", "Use a token with project access")
	}
	z.cachedID = out.ClientUserList[0].ClientId.TypedString().String()
	return z.cachedID, nil
}

// resolveProject returns the configured project or the single project the token can access.
func (z *ZeropsCounter) resolveProject(ctx context.Context, clientID string) (string, error) {
	if z.projectID != "" {
		return z.projectID, nil
	}

	resp, err := z.handler.PostProjectSearch(ctx, clientFilter(clientID))
	if err != nil {
		return "", mapSDKError(err, "project")
	}
	out, err := resp.Output()
	if err != nil {
		return "", mapSDKError(err, "project")
	}

	switch len(out.Items) {
	case 0:
		return "", NewPlatformError(ErrTokenNoProject, "Zerops token has no project access",
			"Use a project-scoped token or set counter.zerops.projectId")
	case 1:
		return out.Items[0].Id.TypedString().String(), nil
	default:
		return "", NewPlatformError(ErrTokenMultiProject,
			fmt.Sprintf("Zerops token accesses %d projects", len(out.Items)),
			"Set counter.zerops.projectId")
	}
}

func (z *ZeropsCounter) listServices(ctx context.Context, clientID, projectID string) ([]ServiceStack, error) {
	resp, err := z.handler.PostServiceStackSearch(ctx, clientFilter(clientID))
	if err != nil {
		return nil, mapSDKError(err, "service")
	}
	out, err := resp.Output()
	if err != nil {
		return nil, mapSDKError(err, "service")
	}

	services := make([]ServiceStack, 0, len(out.Items))
	for _, s := range out.Items {
		svc := mapEsServiceStack(s)
		if svc.ProjectID == projectID {
			services = append(services, svc)
		}
	}
	return services, nil
}

func clientFilter(clientID string) body.EsFilter {
	return body.EsFilter{
		Search: body.EsFilterSearch{
			body.EsSearchItem{
				Name:     types.NewString("clientId"),
				Operator: types.NewString("eq"),
				Value:    types.NewString(clientID),
			},
		},
		Sort: body.EsFilterSort{},
	}
}

func mapEsServiceStack(s output.EsServiceStack) ServiceStack {
	return ServiceStack{
		ID:        s.Id.TypedString().String(),
		Name:      s.Name.String(),
		ProjectID: s.ProjectId.TypedString().String(),
		Status:    s.Status.String(),
	}
}
