package main

import (
	"flag"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/df07/go-sdf-raymarcher/pkg/scene"
	"github.com/df07/go-sdf-raymarcher/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	webServer := server.NewServer(*port)

	sceneIDs := scene.SceneIDs()
	sort.Strings(sceneIDs)

	log.Printf("SDF Raymarcher Web Server")
	log.Printf("Scenes: %s", strings.Join(sceneIDs, ", "))
	log.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
