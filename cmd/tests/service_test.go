package tests

import (
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v2"
)

//
// endpoint smoke tests. these run against a deployed instance of the
// service; set the endpoint in service_test.yml or via TC_ENDPOINT.
// tests are skipped when no endpoint is configured.
//

type testConfig struct {
	Endpoint string
}

var cfg = loadConfig()

func loadConfig() testConfig {
	data, err := ioutil.ReadFile("service_test.yml")
	if err != nil {
		log.Fatal(err)
	}

	var c testConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		log.Fatal(err)
	}

	// allow environment variables to override the configuration file
	if len(os.Getenv("TC_ENDPOINT")) != 0 {
		c.Endpoint = os.Getenv("TC_ENDPOINT")
	}

	log.Printf("endpoint [%s]\n", c.Endpoint)

	return c
}

func requireEndpoint(t *testing.T) string {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		t.Skip("no service endpoint configured")
	}
	return endpoint
}

func getEndpoint(t *testing.T, url string) (int, string) {
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("Expected to GET %s, got %v\n", url, err)
	}
	defer res.Body.Close()

	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Expected to read response body, got %v\n", err)
	}

	return res.StatusCode, string(body)
}

//
// healthcheck tests
//

func TestHealthCheck(t *testing.T) {
	endpoint := requireEndpoint(t)

	expected := http.StatusOK
	status, _ := getEndpoint(t, endpoint+"/healthcheck")
	if status != expected {
		t.Fatalf("Expected %v, got %v\n", expected, status)
	}
}

//
// end of file
//
