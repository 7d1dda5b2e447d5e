package utils

//run redis (job store; falls back to memory when offline)
//docker run -p 6379:6379 -d redis

//run qdrant (per-run exhibit collections; VECTOR_BACKEND=memory skips it)
//docker run -p 6333:6333 -p 6334:6334 qdrant/qdrant

//swagger init
//swag init -g cmd/api/main.go --parseDependency --parseInternal --dir ./ --output ./cmd/api/docs

//cli and mcp
//go run ./cmd/earnings AAPL --form 8-K
//go run ./cmd/mcp
