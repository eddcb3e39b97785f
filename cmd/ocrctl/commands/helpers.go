package commands

import (
	"encoding/json"
	"os"

	"github.com/glyphlab/ocrserve/internal/client"
)

func newClient() *client.Client {
	return client.New(serverURL, client.WithTimeout(requestTimeout))
}

func writeJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
