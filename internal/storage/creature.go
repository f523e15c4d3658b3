package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	barnerr "github.com/jwebster45206/creature-barn/internal/errors"
	"github.com/jwebster45206/creature-barn/pkg/creature"
	"github.com/jwebster45206/creature-barn/pkg/statblock"
)

var abilityColumns = []string{"strength", "dexterity", "constitution", "intelligence", "wisdom", "charisma"}

func (s *SQLiteStorage) SaveCreature(ctx context.Context, c *creature.Creature) error {
	if c == nil {
		return barnerr.InvalidInput("creature cannot be nil")
	}
	if c.ID == "" {
		return barnerr.InvalidInput("creature id is required")
	}

	record, err := json.Marshal(c.Record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	abilities := make([]any, len(abilityColumns))
	for i, key := range abilityColumns {
		if v, ok := c.Abilities[key]; ok {
			abilities[i] = v
		}
	}

	now := time.Now().UTC().UnixMilli()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	args := []any{
		c.ID, c.Name, c.CR, c.XP, c.Alignment, c.Size, c.Type, c.Class,
		c.AC, c.TouchAC, c.FlatFootedAC, c.HP, c.HitDice, c.Fort, c.Ref, c.Will,
	}
	args = append(args, abilities...)
	args = append(args,
		c.BAB, c.CMB, c.CMD,
		c.Speed, c.Environment, c.Organization, c.Treasure, c.Content,
		string(record), now, now,
	)

	if _, err := tx.ExecContext(ctx, `INSERT INTO creatures (
		   id, name, challenge_rating, experience_points, alignment, size, type, char_class,
		   armor_class, touch_armor_class, flat_footed_armor_class, hit_points, hit_dice,
		   fortitude, reflex, will,
		   strength, dexterity, constitution, intelligence, wisdom, charisma,
		   base_attack, combat_maneuver_bonus, combat_maneuver_defense,
		   speed, environment, organization, treasure, content,
		   record_json, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   challenge_rating = excluded.challenge_rating,
		   experience_points = excluded.experience_points,
		   alignment = excluded.alignment,
		   size = excluded.size,
		   type = excluded.type,
		   char_class = excluded.char_class,
		   armor_class = excluded.armor_class,
		   touch_armor_class = excluded.touch_armor_class,
		   flat_footed_armor_class = excluded.flat_footed_armor_class,
		   hit_points = excluded.hit_points,
		   hit_dice = excluded.hit_dice,
		   fortitude = excluded.fortitude,
		   reflex = excluded.reflex,
		   will = excluded.will,
		   strength = excluded.strength,
		   dexterity = excluded.dexterity,
		   constitution = excluded.constitution,
		   intelligence = excluded.intelligence,
		   wisdom = excluded.wisdom,
		   charisma = excluded.charisma,
		   base_attack = excluded.base_attack,
		   combat_maneuver_bonus = excluded.combat_maneuver_bonus,
		   combat_maneuver_defense = excluded.combat_maneuver_defense,
		   speed = excluded.speed,
		   environment = excluded.environment,
		   organization = excluded.organization,
		   treasure = excluded.treasure,
		   content = excluded.content,
		   record_json = excluded.record_json,
		   updated_at = excluded.updated_at`,
		args...,
	); err != nil {
		s.logger.Error("Failed to save creature", "creature_id", c.ID, "error", err)
		return fmt.Errorf("failed to save creature: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM creature_list_items WHERE creature_id = ?`, c.ID); err != nil {
		return fmt.Errorf("failed to clear list items: %w", err)
	}
	for _, kind := range creature.ListKinds() {
		for pos, item := range c.Lists[kind] {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO creature_list_items (creature_id, kind, position, value) VALUES (?, ?, ?, ?)`,
				c.ID, string(kind), pos, item,
			); err != nil {
				return fmt.Errorf("failed to save %s item: %w", kind, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save transaction: %w", err)
	}
	s.logger.Debug("Creature saved", "creature_id", c.ID, "name", c.Name)
	return nil
}

func (s *SQLiteStorage) GetCreature(ctx context.Context, id string) (*creature.Creature, error) {
	c := &creature.Creature{ID: id}
	var (
		scores [6]sql.NullInt64
		record string
	)
	err := s.db.QueryRowContext(ctx, `SELECT
		   name, challenge_rating, experience_points, alignment, size, type, char_class,
		   armor_class, touch_armor_class, flat_footed_armor_class, hit_points, hit_dice,
		   fortitude, reflex, will,
		   strength, dexterity, constitution, intelligence, wisdom, charisma,
		   base_attack, combat_maneuver_bonus, combat_maneuver_defense,
		   speed, environment, organization, treasure, content, record_json
		 FROM creatures WHERE id = ?`, id,
	).Scan(
		&c.Name, &c.CR, &c.XP, &c.Alignment, &c.Size, &c.Type, &c.Class,
		&c.AC, &c.TouchAC, &c.FlatFootedAC, &c.HP, &c.HitDice,
		&c.Fort, &c.Ref, &c.Will,
		&scores[0], &scores[1], &scores[2], &scores[3], &scores[4], &scores[5],
		&c.BAB, &c.CMB, &c.CMD,
		&c.Speed, &c.Environment, &c.Organization, &c.Treasure, &c.Content, &record,
	)
	if err == sql.ErrNoRows {
		return nil, barnerr.NotFoundf("creature %s not found", id)
	}
	if err != nil {
		s.logger.Error("Failed to load creature", "creature_id", id, "error", err)
		return nil, fmt.Errorf("failed to load creature: %w", err)
	}

	for i, score := range scores {
		if !score.Valid {
			continue
		}
		if c.Abilities == nil {
			c.Abilities = make(map[string]int)
		}
		c.Abilities[abilityColumns[i]] = int(score.Int64)
	}

	var rec statblock.Record
	if err := json.Unmarshal([]byte(record), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	c.Record = rec

	lists, err := s.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Lists = lists
	return c, nil
}

func (s *SQLiteStorage) listItems(ctx context.Context, id string) (map[creature.ListKind][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, value FROM creature_list_items WHERE creature_id = ? ORDER BY kind, position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load list items: %w", err)
	}
	defer rows.Close()

	lists := make(map[creature.ListKind][]string)
	for rows.Next() {
		var kind, value string
		if err := rows.Scan(&kind, &value); err != nil {
			return nil, fmt.Errorf("failed to scan list item: %w", err)
		}
		lists[creature.ListKind(kind)] = append(lists[creature.ListKind(kind)], value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read list items: %w", err)
	}
	return lists, nil
}

func (s *SQLiteStorage) ListCreatures(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, challenge_rating, type, updated_at FROM creatures ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list creatures: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var (
			sum       Summary
			updatedAt int64
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.CR, &sum.Type, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan creature: %w", err)
		}
		sum.UpdatedAt = time.UnixMilli(updatedAt).UTC()
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list creatures: %w", err)
	}
	return summaries, nil
}

func (s *SQLiteStorage) DeleteCreature(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM creature_list_items WHERE creature_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete list items: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM creatures WHERE id = ?`, id)
	if err != nil {
		s.logger.Error("Failed to delete creature", "creature_id", id, "error", err)
		return fmt.Errorf("failed to delete creature: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete creature: %w", err)
	}
	if n == 0 {
		return barnerr.NotFoundf("creature %s not found", id)
	}
	return tx.Commit()
}
