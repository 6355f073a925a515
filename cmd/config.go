package main

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"sort"
	"strings"
)

type serviceConfigIdentity struct {
	NameXID string `json:"name_xid,omitempty"` // translation ID
	DescXID string `json:"desc_xid,omitempty"` // translation ID
}

type serviceConfigService struct {
	Port   string `json:"port,omitempty"`
	JWTKey string `json:"jwt_key,omitempty"`
}

type serviceConfigConverter struct {
	ToLineBin   string `json:"to_line_bin,omitempty"`   // binary MARC -> line format
	ToBinaryBin string `json:"to_binary_bin,omitempty"` // line format -> binary MARC
	Timeout     string `json:"timeout,omitempty"`       // seconds
}

type serviceConfigExtract struct {
	DefaultLimit int `json:"default_limit,omitempty"` // value cap when the client does not supply one; 0 means no cap
}

type serviceConfigTagLabel struct {
	Tag string `json:"tag,omitempty"`
	XID string `json:"xid,omitempty"` // translation ID
}

type serviceConfig struct {
	Identity  serviceConfigIdentity   `json:"identity,omitempty"`
	Service   serviceConfigService    `json:"service,omitempty"`
	Converter serviceConfigConverter  `json:"converter,omitempty"`
	Extract   serviceConfigExtract    `json:"extract,omitempty"`
	TagLabels []serviceConfigTagLabel `json:"tag_labels,omitempty"`
}

func getSortedJSONEnvVars() []string {
	var keys []string

	for _, keyval := range os.Environ() {
		key := strings.Split(keyval, "=")[0]
		if strings.HasPrefix(key, "VIRGO4_MARC_EXTRACT_WS_JSON_") {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	return keys
}

func loadConfig() *serviceConfig {
	cfg := serviceConfig{}

	// json configs

	envs := getSortedJSONEnvVars()

	valid := true

	for _, env := range envs {
		log.Printf("[CONFIG] loading %s ...", env)
		if val := os.Getenv(env); val != "" {
			dec := json.NewDecoder(bytes.NewReader([]byte(val)))
			dec.DisallowUnknownFields()

			if err := dec.Decode(&cfg); err != nil {
				log.Printf("error decoding %s: %s", env, err.Error())
				valid = false
			}
		}
	}

	if valid == false {
		log.Printf("exiting due to json decode error(s) above")
		os.Exit(1)
	}

	// optional convenience overrides to simplify terraform config
	if port := os.Getenv("VIRGO4_MARC_EXTRACT_WS_PORT"); port != "" {
		cfg.Service.Port = port
	}

	if key := os.Getenv("VIRGO4_MARC_EXTRACT_WS_JWT_KEY"); key != "" {
		cfg.Service.JWTKey = key
	}

	bytes, err := json.Marshal(cfg)
	if err != nil {
		log.Printf("error encoding service config json: %s", err.Error())
		os.Exit(1)
	}

	log.Printf("[CONFIG] composite json:")
	log.Printf("\n%s", string(bytes))

	return &cfg
}
