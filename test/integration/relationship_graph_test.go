package integration

import (
	"context"
	"testing"
	"time"

	neo4jdriver "github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/turtacn/FinCrime-Intelligence/internal/domain/entity"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/database/neo4j"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/database/neo4j/repositories"
)

// seedGraph creates the full-text indexes and a small ownership structure:
// an intermediary and an officer both attached to one entity.
func seedGraph(t *testing.T, ctx context.Context, cfg neo4jConfig) {
	t.Helper()

	raw, err := neo4jdriver.NewDriverWithContext(cfg.URI, neo4jdriver.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		t.Fatalf("raw driver: %v", err)
	}
	defer raw.Close(ctx)

	session := raw.NewSession(ctx, neo4jdriver.SessionConfig{})
	defer session.Close(ctx)

	statements := []string{
		`CREATE FULLTEXT INDEX entity_name_index IF NOT EXISTS FOR (n:Entity) ON EACH [n.name]`,
		`CREATE FULLTEXT INDEX officer_name_index IF NOT EXISTS FOR (n:Officer) ON EACH [n.name]`,
		`CREATE FULLTEXT INDEX address_name_index IF NOT EXISTS FOR (n:Address) ON EACH [n.address]`,
		`CREATE FULLTEXT INDEX intermediary_name_index IF NOT EXISTS FOR (n:Intermediary) ON EACH [n.name]`,
		`CREATE (a:Entity {name: 'Acme Holdings', sourceID: 'Panama Papers'})
		 CREATE (i:Intermediary {name: 'Fast Shipping SA', sourceID: 'Panama Papers'})
		 CREATE (o:Officer {name: 'Maria Santos', sourceID: 'Panama Papers'})
		 CREATE (i)-[:intermediary_of]->(a)
		 CREATE (o)-[:officer_of]->(a)`,
		`CALL db.awaitIndexes(300)`,
	}
	for _, stmt := range statements {
		if _, err := session.Run(ctx, stmt, nil); err != nil {
			t.Fatalf("seed statement failed: %v\n%s", err, stmt)
		}
	}
}

// neo4jConfig mirrors config.Neo4jConfig's connection fields for seeding.
type neo4jConfig struct {
	URI      string
	User     string
	Password string
}

func TestRelationshipRepository_AgainstLiveGraph(t *testing.T) {
	skipUnlessIntegration(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	log := testLogger(t)

	cfg := startNeo4j(t, ctx)
	seedGraph(t, ctx, neo4jConfig{URI: cfg.URI, User: cfg.User, Password: cfg.Password})

	driver, err := neo4j.NewDriver(cfg, log)
	if err != nil {
		t.Fatalf("driver: %v", err)
	}
	defer driver.Close()

	repo := repositories.NewRelationshipRepository(driver, log)

	t.Run("FullTextSearch", func(t *testing.T) {
		hits, err := repo.FullTextSearch(ctx, entity.CategoryEntity, "Acme")
		if err != nil {
			t.Fatalf("FullTextSearch: %v", err)
		}
		if len(hits) == 0 || hits[0].Name != "Acme Holdings" {
			t.Errorf("hits = %+v", hits)
		}
		if hits[0].Score <= 0 {
			t.Errorf("score = %v, want positive", hits[0].Score)
		}
	})

	t.Run("FullTextSearchNoMatch", func(t *testing.T) {
		hits, err := repo.FullTextSearch(ctx, entity.CategoryEntity, "Zzyzx")
		if err != nil {
			t.Fatalf("FullTextSearch: %v", err)
		}
		if len(hits) != 0 {
			t.Errorf("hits = %+v, want none", hits)
		}
	})

	t.Run("TraverseNeighborhood", func(t *testing.T) {
		conns, err := repo.TraverseNeighborhood(ctx, "Acme Holdings", entity.CategoryEntity)
		if err != nil {
			t.Fatalf("TraverseNeighborhood: %v", err)
		}
		if len(conns) != 2 {
			t.Fatalf("connections = %+v, want 2", conns)
		}

		byName := map[string]repositories.Connection{}
		for _, c := range conns {
			byName[c.ConnectedEntity] = c
		}
		inter, ok := byName["Fast Shipping SA"]
		if !ok {
			t.Fatalf("missing intermediary connection: %+v", conns)
		}
		if len(inter.RelationshipTypes) != 1 || inter.RelationshipTypes[0] != "intermediary_of" {
			t.Errorf("relationship types = %v", inter.RelationshipTypes)
		}
		if inter.Source != "Panama Papers" {
			t.Errorf("source = %q", inter.Source)
		}
		if _, ok := byName["Maria Santos"]; !ok {
			t.Errorf("missing officer connection: %+v", conns)
		}
	})

	t.Run("TraverseUnknownNode", func(t *testing.T) {
		conns, err := repo.TraverseNeighborhood(ctx, "Ghost Corp", entity.CategoryEntity)
		if err != nil {
			t.Fatalf("TraverseNeighborhood: %v", err)
		}
		if len(conns) != 0 {
			t.Errorf("connections = %+v, want none", conns)
		}
	})
}
