// cmd/seed/main.go — Reinserta los datos de demostracion (clientes y
// productos) en el almacen local, borrando los existentes. Los pagos
// registrados no se tocan.
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Epaval/factura-con-api-facdin/internal/infra"
	"github.com/Epaval/factura-con-api-facdin/internal/service"
)

func main() {
	path := os.Getenv("FACDIN_DB_PATH")
	if path == "" {
		path = "facdin_local.db"
	}

	db, err := infra.NewDatabase(path)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}

	if err := service.NewSeedService(db).Reseed(context.Background()); err != nil {
		log.Fatalf("reseed error: %v", err)
	}
	fmt.Printf("✅ Datos de demo reinsertados en '%s'\n", path)
}
