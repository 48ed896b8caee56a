package lambda

// ProxySource names the AWS service whose proxy events the function
// receives. It decides which httpadapter translates events into
// requests for the route tree.
type ProxySource string

const (
	ProxySourceApiGatewayV1 ProxySource = "API_GW_V1"
	ProxySourceApiGatewayV2 ProxySource = "API_GW_V2"
	ProxySourceAlb          ProxySource = "ALB"
)

func (p ProxySource) String() string {
	return string(p)
}

// Config holds the lambda-mode settings.
type Config struct {
	ProxySource ProxySource `conf:"lambda_proxy_source"`
}
