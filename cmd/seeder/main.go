// seeder puebla un entorno de desarrollo/staging con datos sintéticos
// coherentes: usuarios en el servicio de identidad (Firebase Auth), empresas y
// usuarios en el almacén de documentos (Firestore, MongoDB o memoria), y la
// asignación aleatoria de usuarios a empresas.
//
// Uso: go run ./cmd/seeder [-config dir] [-pause]
// Lee config.json del directorio indicado (por defecto el actual).
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gpelletier0/firestore-data-seeder/internal/application/seeding"
	"github.com/gpelletier0/firestore-data-seeder/internal/domain/repository"
	"github.com/gpelletier0/firestore-data-seeder/internal/infrastructure/fake"
	infrafirebase "github.com/gpelletier0/firestore-data-seeder/internal/infrastructure/firebase"
	"github.com/gpelletier0/firestore-data-seeder/internal/infrastructure/memory"
	"github.com/gpelletier0/firestore-data-seeder/internal/infrastructure/mongodb"
	"github.com/gpelletier0/firestore-data-seeder/internal/infrastructure/report"
	"github.com/gpelletier0/firestore-data-seeder/pkg/config"
	"github.com/gpelletier0/firestore-data-seeder/pkg/logger"
)

func main() {
	configDir := flag.String("config", ".", "directorio que contiene config.json")
	pause := flag.Bool("pause", false, "esperar Enter antes de salir")
	flag.Parse()

	code := run(*configDir)

	if *pause {
		fmt.Print("\nPresione Enter para continuar...")
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
	}
	os.Exit(code)
}

func run(configDir string) int {
	cfg, err := config.Load(configDir)
	if err != nil {
		// Sin configuración no hay logger configurado todavía.
		fmt.Fprintf(os.Stderr, "configuración: %v\n", err)
		return 1
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Env).
		Str("backend", cfg.Store.Backend).
		Int("users", cfg.Quantities.Users).
		Int("companies", cfg.Quantities.Companies).
		Msg("iniciando seeder")

	ctx := context.Background()
	identity, store := buildClients(ctx, cfg, log)

	gen := fake.NewGenerator(cfg.Seeds.Generation)
	reporter := report.New(os.Stdout, cfg.Report.Dir, log)

	// Fase 1: usuarios en el servicio de identidad.
	if identity == nil {
		log.Warn().Msg("servicio de identidad no disponible; se omite su fase y las dependientes")
	} else {
		identityUC := seeding.NewIdentitySeedUseCase(identity, gen, reporter)
		if err := identityUC.SeedUsers(ctx, cfg.Quantities.Users); err != nil {
			log.Error().Err(err).Msg("fase de identidad abortada")
			return 1
		}
	}

	if store == nil {
		log.Warn().Msg("almacén de documentos no disponible; se omiten sus fases")
		return 0
	}

	storeUC := seeding.NewStoreSeedUseCase(store, identity, gen, reporter)

	// Fase 2: empresas en el almacén.
	if err := storeUC.SeedCompanies(ctx, cfg.Quantities.Companies); err != nil {
		log.Error().Err(err).Msg("fase de empresas abortada")
		return 1
	}

	// Fases 3 y 4 necesitan el listado de identidad.
	if identity == nil {
		return 0
	}

	// Fase 3: usuarios en el almacén (upsert desde el listado de identidad).
	seeded, err := storeUC.SeedUsers(ctx)
	if err != nil {
		log.Error().Err(err).Msg("fase de usuarios del almacén abortada")
		return 1
	}

	// Fase 4: asignación, solo cuando Users se sembró en esta corrida.
	if seeded {
		pool, err := identity.ListUsers(ctx)
		if err != nil {
			log.Error().Err(err).Msg("listar pool de asignación")
			return 1
		}
		engine := seeding.NewAssignmentEngine(store, reporter, assignmentSeed(cfg))
		remaining, assigned, err := engine.Assign(ctx, pool)
		if err != nil {
			log.Error().Err(err).Msg("fase de asignación abortada")
			return 1
		}
		log.Info().
			Int("asignados", len(assigned)).
			Int("sin_asignar", len(remaining)).
			Msg("asignación completada")
	}

	log.Info().Msg("seeding completado")
	return 0
}

// buildClients inicializa los adaptadores según el backend configurado. Un
// cliente que falla al construirse queda en nil y sus fases se omiten en vez
// de abortar la corrida completa.
func buildClients(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.IdentityRepository, repository.DocumentStore) {
	if cfg.Store.Backend == config.BackendMemory {
		log.Info().Msg("backend memory: corrida dry-run, sin escrituras remotas")
		return memory.NewIdentityRepository(), memory.NewStore()
	}

	var identity repository.IdentityRepository
	app, err := firebase.NewApp(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("inicializar app de Firebase")
	} else if authClient, err := app.Auth(ctx); err != nil {
		log.Error().Err(err).Msg("construir cliente de Firebase Auth")
	} else {
		identity = infrafirebase.NewAuthRepository(authClient)
	}

	var store repository.DocumentStore
	switch cfg.Store.Backend {
	case config.BackendFirestore:
		client, err := firestore.NewClient(ctx, os.Getenv(config.EnvProject))
		if err != nil {
			log.Error().Err(err).Msg("construir cliente de Firestore")
		} else {
			store = infrafirebase.NewStore(client)
		}
	case config.BackendMongoDB:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Store.MongoURI))
		if err != nil {
			log.Error().Err(err).Msg("conectar a MongoDB")
		} else if err := client.Ping(connectCtx, nil); err != nil {
			log.Error().Err(err).Msg("ping a MongoDB")
		} else {
			store = mongodb.NewStore(client.Database(cfg.Store.MongoDatabase))
		}
	}
	return identity, store
}

// assignmentSeed: 0 en configuración significa semilla por reloj (cada corrida
// reparte distinto); un valor fijo hace la asignación reproducible.
func assignmentSeed(cfg *config.Config) int64 {
	if cfg.Seeds.Assignment != 0 {
		return cfg.Seeds.Assignment
	}
	return time.Now().UnixNano()
}
