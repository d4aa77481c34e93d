package contextkeys

// Custom key type to avoid context collisions.
type contextKey string

// DBContextKey is where middleware stores the *gorm.DB (pool or transaction).
const DBContextKey = contextKey("db")
