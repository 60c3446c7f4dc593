package store

import (
	"context"
	"fmt"
)

const schema = `
create table if not exists dataset_metadata (
	name       text primary key,
	payload    jsonb not null,
	updated_at timestamptz not null default now()
);

create table if not exists census_areas (
	level            text not null,
	code             text not null,
	position         integer not null,
	name             text not null default '',
	region_name      text not null default '',
	nb_exploitations bigint not null,
	sau              double precision not null,
	by_class         jsonb not null default '{}',
	updated_at       timestamptz not null default now(),
	primary key (level, code)
);

create table if not exists sau_series (
	level       text not null,
	code        text not null,
	position    integer not null,
	name        text not null default '',
	sau_by_year jsonb not null,
	updated_at  timestamptz not null default now(),
	primary key (level, code)
);
`

func (s *store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
