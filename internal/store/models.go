package store

import "time"

// Entities mirrored from the upstream catalog. Every model carries the
// typed fields used directly by lookups and search, plus a Passthrough
// JSON column for everything else the upstream sends, following the
// datatypes.JSON passthrough pattern in
// localnerve-jam-build-propsdb/internal/models/application.go and the
// Envs-style opaque column in cuihairu-croupier's games model. Generation
// is bumped on every DropCollection, laying groundwork for read-your-writes
// without altering current read behavior.

// GameModel is the IGDB_col_games row.
type GameModel struct {
	ID               uint64 `gorm:"primaryKey;autoIncrement:false"`
	Name             string `gorm:"size:512;index"`
	Category         int32  `gorm:"index"`
	FirstReleaseDate int64
	Generation       uint64
	Passthrough      JSON `gorm:"type:json"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (GameModel) TableName() string { return "IGDB_col_games" }

// AlternativeNameModel is the IGDB_col_alternative_names row.
type AlternativeNameModel struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement:false"`
	Name        string `gorm:"size:512;index"`
	Game        uint64 `gorm:"index"`
	Generation  uint64
	Passthrough JSON `gorm:"type:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (AlternativeNameModel) TableName() string { return "IGDB_col_alternative_names" }

// ExternalGameModel is the IGDB_col_external_games row.
type ExternalGameModel struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement:false"`
	Uid         string `gorm:"size:255;index:idx_uid_category,priority:1"`
	Category    int32  `gorm:"index:idx_uid_category,priority:2"`
	Game        uint64 `gorm:"index"`
	Generation  uint64
	Passthrough JSON `gorm:"type:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ExternalGameModel) TableName() string { return "IGDB_col_external_games" }

// GameLocalizationModel is the IGDB_col_game_localizations row.
type GameLocalizationModel struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement:false"`
	Name        string `gorm:"size:512;index"`
	Game        uint64 `gorm:"index"`
	Generation  uint64
	Passthrough JSON `gorm:"type:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (GameLocalizationModel) TableName() string { return "IGDB_col_game_localizations" }

// CompanyModel is the IGDB_col_companies row — id-indexed only.
type CompanyModel struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement:false"`
	Generation  uint64
	Passthrough JSON `gorm:"type:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CompanyModel) TableName() string { return "IGDB_col_companies" }

// Identified is implemented by every GORM model above so Collection[T] can
// read/stamp the upstream id and generation without per-entity glue.
type Identified interface {
	GetID() uint64
	SetID(uint64)
	SetGeneration(uint64)
}

func (m *GameModel) GetID() uint64             { return m.ID }
func (m *GameModel) SetID(id uint64)           { m.ID = id }
func (m *GameModel) SetGeneration(g uint64)    { m.Generation = g }

func (m *AlternativeNameModel) GetID() uint64          { return m.ID }
func (m *AlternativeNameModel) SetID(id uint64)        { m.ID = id }
func (m *AlternativeNameModel) SetGeneration(g uint64) { m.Generation = g }

func (m *ExternalGameModel) GetID() uint64          { return m.ID }
func (m *ExternalGameModel) SetID(id uint64)        { m.ID = id }
func (m *ExternalGameModel) SetGeneration(g uint64) { m.Generation = g }

func (m *GameLocalizationModel) GetID() uint64          { return m.ID }
func (m *GameLocalizationModel) SetID(id uint64)        { m.ID = id }
func (m *GameLocalizationModel) SetGeneration(g uint64) { m.Generation = g }

func (m *CompanyModel) GetID() uint64          { return m.ID }
func (m *CompanyModel) SetID(id uint64)        { m.ID = id }
func (m *CompanyModel) SetGeneration(g uint64) { m.Generation = g }
