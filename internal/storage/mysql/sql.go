package mysql

const upsertTemplateSQL = `
INSERT INTO activity_templates
  (id, title, description, categories, budget_tier, duration, styles, love_tags, environment)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title       = VALUES(title),
  description = VALUES(description),
  categories  = VALUES(categories),
  budget_tier = VALUES(budget_tier),
  duration    = VALUES(duration),
  styles      = VALUES(styles),
  love_tags   = VALUES(love_tags),
  environment = VALUES(environment),
  updated_at  = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Stable id order so two processes load the catalog in the same order.
const listTemplatesSQL = `
SELECT
  id, title, description, categories, budget_tier, duration, styles, love_tags, environment
FROM activity_templates
ORDER BY id
`

const getTemplateSQL = `
SELECT
  id, title, description, categories, budget_tier, duration, styles, love_tags, environment
FROM activity_templates
WHERE id = ?
`
