package sqlite

// Schema DDL for all tables.
const (
	createExperiences = `CREATE TABLE experiences (
    experience_id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    date TEXT NOT NULL,
    time TEXT NOT NULL,
    created_at TEXT NOT NULL,
    search_text TEXT NOT NULL DEFAULT ''
);`

	createExperiencePlaces = `CREATE TABLE experience_places (
    experience_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    place_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    rating REAL NOT NULL,
    address TEXT NOT NULL,
    image TEXT NOT NULL,
    description TEXT NOT NULL,
    website TEXT NOT NULL,
    PRIMARY KEY (experience_id, position),
    FOREIGN KEY (experience_id) REFERENCES experiences(experience_id) ON DELETE CASCADE
);`

	createFavorites = `CREATE TABLE favorites (
    place_id INTEGER PRIMARY KEY,
    created_at TEXT NOT NULL
);`
)

// Index DDL for common queries.
const (
	idxExperiencesCreated  = `CREATE INDEX idx_experiences_created ON experiences(created_at);`
	idxExperiencePlacesRef = `CREATE INDEX idx_experience_places_place ON experience_places(place_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createExperiences,
	createExperiencePlaces,
	createFavorites,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxExperiencesCreated,
	idxExperiencePlacesRef,
}
