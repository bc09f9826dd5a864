package ats

import "sync"

var (
	defaultOnce     sync.Once
	defaultTaxonomy *Taxonomy
)

// DefaultTaxonomy returns the built-in skill table. The result is shared and read-only.
func DefaultTaxonomy() *Taxonomy {
	defaultOnce.Do(func() {
		defaultTaxonomy = MustTaxonomy(DefaultTaxonomyData())
	})
	return defaultTaxonomy
}

// DefaultTaxonomyData returns a fresh copy of the built-in table, e.g. for seeding storage.
func DefaultTaxonomyData() TaxonomyData {
	return TaxonomyData{
		Categories: []Category{
			{Name: "programming_languages", Class: ClassTechnicalHard, Skills: []string{
				"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "PHP", "Ruby", "Go", "Rust",
				"Swift", "Kotlin", "Scala", "R", "MATLAB", "Perl", "Shell", "PowerShell", "Dart", "Objective-C",
			}},
			{Name: "web_frameworks", Class: ClassTechnicalSoft, Skills: []string{
				"React", "Angular", "Vue.js", "Next.js", "Gatsby", "Svelte", "Django", "Flask", "FastAPI",
				"Spring Boot", "Express.js", "Node.js", "Laravel", "Ruby on Rails", "ASP.NET", "Blazor",
			}},
			{Name: "databases", Class: ClassTechnicalHard, Skills: []string{
				"MySQL", "PostgreSQL", "MongoDB", "SQLite", "Oracle", "SQL Server", "Redis", "Elasticsearch",
				"Cassandra", "DynamoDB", "Firebase", "MariaDB", "CouchDB", "Neo4j", "InfluxDB",
			}},
			{Name: "cloud_platforms", Class: ClassTechnicalHard, Skills: []string{
				"AWS", "Microsoft Azure", "Google Cloud Platform", "Heroku", "DigitalOcean", "Linode",
				"Oracle Cloud", "IBM Cloud", "Alibaba Cloud", "CloudFlare",
			}},
			{Name: "devops_tools", Class: ClassTechnicalHard, Skills: []string{
				"Docker", "Kubernetes", "Jenkins", "GitLab CI", "GitHub Actions", "Travis CI", "CircleCI",
				"Ansible", "Terraform", "Chef", "Puppet", "Vagrant", "Prometheus", "Grafana",
			}},
			{Name: "data_science", Class: ClassTechnicalSoft, Skills: []string{
				"Machine Learning", "Deep Learning", "Neural Networks", "TensorFlow", "PyTorch", "Keras",
				"Scikit-learn", "Pandas", "NumPy", "Matplotlib", "Seaborn", "Jupyter", "Apache Spark",
			}},
			{Name: "mobile_development", Class: ClassTechnicalSoft, Skills: []string{
				"iOS Development", "Android Development", "React Native", "Flutter", "Xamarin",
				"Ionic", "Cordova", "SwiftUI", "Kotlin Multiplatform",
			}},
			{Name: "soft_skills", Class: ClassGeneralProfessional, Skills: []string{
				"Leadership", "Communication", "Problem Solving", "Critical Thinking", "Teamwork",
				"Project Management", "Time Management", "Adaptability", "Creativity", "Analytical Thinking",
			}},
			{Name: "project_management", Class: ClassDomainSpecific, Skills: []string{
				"Agile", "Scrum", "Kanban", "Waterfall", "JIRA", "Trello", "Asana", "Monday.com",
				"Microsoft Project", "Slack", "Confluence",
			}},
			{Name: "cybersecurity", Class: ClassDomainSpecific, Skills: []string{
				"Information Security", "Penetration Testing", "Vulnerability Assessment", "CISSP",
				"CEH", "CISM", "Security Auditing", "Incident Response", "Risk Management",
			}},
		},
		IndustryTerms: []string{"agile", "scrum", "ci/cd", "microservices", "api", "database", "frontend", "backend"},
		Industries: []Industry{
			{Name: "technology", Keywords: []string{"software", "technology", "saas", "it services", "information technology", "tech"}},
			{Name: "healthcare", Keywords: []string{"healthcare", "hospital", "clinical", "medical", "pharmaceutical"}},
			{Name: "finance", Keywords: []string{"finance", "banking", "fintech", "financial services", "insurance"}},
			{Name: "manufacturing", Keywords: []string{"manufacturing", "factory", "production line", "supply chain"}},
			{Name: "government", Keywords: []string{"government", "public sector", "ministry", "municipal"}},
		},
	}
}
