/**
 * Copyright 2020 TryFix Engineering.
 * All rights reserved.
 * Authors:
 *    Gayan Yapa (gmbyapa@gmail.com)
 */

package main

import (
	"fmt"

	"github.com/tryfix/jsonserde"
	"github.com/tryfix/log"
)

func main() {
	// points at a locally running schema registry
	url := `http://localhost:8081/`

	client, err := jsonserde.NewRegistryClient(url,
		jsonserde.WithClientLogger(log.NewLog().Log(log.WithLevel(log.INFO))),
	)
	if err != nil {
		log.Fatal(err)
	}

	schema, err := jsonserde.ParseSchema(`{
		"type": "object",
		"properties": {
			"id": {"type": "string"},
			"total": {"type": "number"}
		},
		"required": ["id"]
	}`)
	if err != nil {
		log.Fatal(err)
	}

	serializer, err := jsonserde.NewSerializer(client, schema,
		jsonserde.WithAutoRegistration(),
		jsonserde.WithPayloadValidation(),
		jsonserde.WithLogger(log.NewLog().Log(log.WithLevel(log.INFO))),
	)
	if err != nil {
		log.Fatal(err)
	}

	type Order struct {
		Id    string  `json:"id"`
		Total float64 `json:"total"`
	}

	payload, err := serializer.Serialize(`orders`, Order{Id: `ord-1`, Total: 42.5})
	if err != nil {
		log.Fatal(err)
	}

	log.Info(fmt.Sprintf(`orders message framed as %x`, payload))
}
