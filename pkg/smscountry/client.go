package smscountry

// Client is the entry point to the provider API. Calls is the only
// resource wired so far.
type Client struct {
	Endpoint Endpoint
	Call     *CallClient
}

func NewClient(endpoint Endpoint) (*Client, error) {
	call, err := NewCallClient(endpoint)
	if err != nil {
		return nil, err
	}

	return &Client{
		Endpoint: endpoint,
		Call:     call,
	}, nil
}
