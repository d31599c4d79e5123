package listings

import "github.com/JaimeStill/listing-lab/pkg/query"

var projection = query.
	NewProjectionMap("public", "listings", "l").
	Project("id", "Id").
	Project("product_input", "ProductInput").
	Project("category", "Category").
	Project("title", "Title").
	Project("description", "Description").
	Project("bullet_points", "BulletPoints").
	Project("search_terms", "SearchTerms").
	Project("backend_keywords", "BackendKeywords").
	Project("pricing_notes", "PricingNotes").
	Project("hashtags", "Hashtags").
	Project("captions", "Captions").
	Project("image_prompts", "ImagePrompts").
	Project("image_urls", "ImageURLs").
	Project("recommendations", "Recommendations").
	Project("confidence", "Confidence").
	Project("status", "Status").
	Project("version", "Version").
	Project("notes", "Notes").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = "CreatedAt"
