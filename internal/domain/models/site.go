package models

// DefaultSiteName is the site name shown in page headers and titles.
const DefaultSiteName = "NGO Rescue Hub"
