package searchindex

import (
	"context"
	"database/sql"
	"fmt"
)

const entryColumns = `content, entity_type, entity_id, novel_id, chapter_id, title,
	volume_title, chapter_order, volume_order, volume_id`

// Replace removes any entry for (e.EntityType, e.EntityID) and inserts e.
// FTS5 has no efficient partial update, so create and modify share this path.
// Both statements run in one transaction so readers never see two rows for
// the entity.
func (s *Store) Replace(ctx context.Context, e Entry) error {
	if !s.Available() {
		return ErrUnavailable
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin index transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM "+tableName+" WHERE entity_type = ? AND entity_id = ?",
		string(e.EntityType), e.EntityID,
	); err != nil {
		return fmt.Errorf("failed to delete index entry: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO "+tableName+" ("+entryColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		e.Content, string(e.EntityType), e.EntityID, e.NovelID, nullable(e.ChapterID), e.Title,
		nullable(e.VolumeTitle), nullableInt(e.ChapterOrder), nullableInt(e.VolumeOrder), nullable(e.VolumeID),
	); err != nil {
		return fmt.Errorf("failed to insert index entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit index entry: %w", err)
	}
	return nil
}

// Delete removes the entry for one entity, if any.
func (s *Store) Delete(ctx context.Context, entityType EntityType, entityID string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM "+tableName+" WHERE entity_type = ? AND entity_id = ?",
		string(entityType), entityID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete index entry: %w", err)
	}
	return nil
}

// DeleteNovel removes every entry scoped to novelID.
func (s *Store) DeleteNovel(ctx context.Context, novelID string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM "+tableName+" WHERE novel_id = ?", novelID); err != nil {
		return fmt.Errorf("failed to clear novel index: %w", err)
	}
	return nil
}

// CountByType counts distinct indexed entities of each type for novelID.
// Types with no entries are present with a zero count.
func (s *Store) CountByType(ctx context.Context, novelID string) (map[EntityType]int, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT entity_type, COUNT(DISTINCT entity_id) FROM "+tableName+" WHERE novel_id = ? GROUP BY entity_type",
		novelID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count index entries: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := map[EntityType]int{EntityChapter: 0, EntityIdea: 0}
	for rows.Next() {
		var entityType string
		var n int
		if err := rows.Scan(&entityType, &n); err != nil {
			return nil, fmt.Errorf("failed to scan index count: %w", err)
		}
		counts[EntityType(entityType)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return counts, nil
}

// Query returns the entries of novelID whose content, title or volume title
// matches the LIKE pattern, ordered by volume then chapter order. pattern must
// already be escaped with backslash as the escape character.
func (s *Store) Query(ctx context.Context, novelID, pattern string, limit, offset int) ([]Entry, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM `+tableName+`
		 WHERE novel_id = ?
		   AND (content LIKE ? ESCAPE '\' OR title LIKE ? ESCAPE '\' OR volume_title LIKE ? ESCAPE '\')
		 ORDER BY volume_order ASC, chapter_order ASC
		 LIMIT ? OFFSET ?`,
		novelID, pattern, pattern, pattern, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query search index: %w", err)
	}
	return scanEntries(rows)
}

// Entries returns every entry for one entity. Normally zero or one.
func (s *Store) Entries(ctx context.Context, entityType EntityType, entityID string) ([]Entry, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM "+tableName+" WHERE entity_type = ? AND entity_id = ?",
		string(entityType), entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query index entries: %w", err)
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer func() {
		_ = rows.Close()
	}()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var entityType string
		var chapterID, volumeTitle, volumeID sql.NullString
		var chapterOrder, volumeOrder sql.NullInt64
		if err := rows.Scan(&e.Content, &entityType, &e.EntityID, &e.NovelID, &chapterID, &e.Title,
			&volumeTitle, &chapterOrder, &volumeOrder, &volumeID); err != nil {
			return nil, fmt.Errorf("failed to scan index entry: %w", err)
		}
		e.EntityType = EntityType(entityType)
		e.ChapterID = chapterID.String
		e.VolumeTitle = volumeTitle.String
		e.VolumeID = volumeID.String
		if chapterOrder.Valid {
			v := int(chapterOrder.Int64)
			e.ChapterOrder = &v
		}
		if volumeOrder.Valid {
			v := int(volumeOrder.Int64)
			e.VolumeOrder = &v
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return entries, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
