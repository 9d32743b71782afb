package project

import (
	"slices"

	"github.com/lithammer/dedent"
)

// Well-known paths inside generated projects, relative to the project root.
const (
	SpringManifestFile = "pom.xml"
	SpringConfigFile   = "src/main/resources/application.yml"
	NestModuleFile     = "src/app.module.ts"

	// ManifestMarker is the closing tag the dependency snippet is inserted before.
	ManifestMarker = "</dependencies>"
)

// SpringTemplate is the pair of literals injected into a Spring Boot project.
type SpringTemplate struct {
	// Dependency is spliced into pom.xml right before ManifestMarker.
	Dependency string
	// ApplicationYAML replaces application.yml entirely.
	ApplicationYAML string
}

// NestTemplate holds what a NestJS project needs for one database.
type NestTemplate struct {
	// ModuleSnippet is appended verbatim to src/app.module.ts.
	ModuleSnippet string
	// Packages are installed into the project after generation.
	Packages []string
}

// The pom.xml generated by Spring Initializr indents with tabs; the
// dependency literals follow it so the spliced block lines up.
var springTemplates = map[Database]SpringTemplate{
	DatabaseMySQL: {
		Dependency: `	<dependency>
			<groupId>org.springframework.boot</groupId>
			<artifactId>spring-boot-starter-data-jpa</artifactId>
		</dependency>
		<dependency>
			<groupId>mysql</groupId>
			<artifactId>mysql-connector-java</artifactId>
			<version>8.0.33</version>
		</dependency>
	`,
		ApplicationYAML: dedent.Dedent(`
			spring:
			  datasource:
			    url: jdbc:mysql://localhost:3306/mydb
			    username: root
			    password: password
			    driver-class-name: com.mysql.cj.jdbc.Driver
			  jpa:
			    hibernate:
			      ddl-auto: update
			    show-sql: true
			`)[1:],
	},
	DatabaseMongoDB: {
		Dependency: `	<dependency>
			<groupId>org.springframework.boot</groupId>
			<artifactId>spring-boot-starter-data-mongodb</artifactId>
		</dependency>
	`,
		ApplicationYAML: dedent.Dedent(`
			spring:
			  data:
			    mongodb:
			      uri: mongodb://localhost:27017/mydb
			`)[1:],
	},
}

var nestTemplates = map[Database]NestTemplate{
	DatabaseMySQL: {
		ModuleSnippet: dedent.Dedent(`

			import { TypeOrmModule } from '@nestjs/typeorm';

			TypeOrmModule.forRoot({
			  type: 'mysql',
			  host: 'localhost',
			  port: 3306,
			  username: 'root',
			  password: 'password',
			  database: 'mydb',
			  autoLoadEntities: true,
			  synchronize: true,
			})
			`),
		Packages: []string{"@nestjs/typeorm", "mysql2"},
	},
	DatabaseMongoDB: {
		ModuleSnippet: dedent.Dedent(`

			import { MongooseModule } from '@nestjs/mongoose';

			MongooseModule.forRoot('mongodb://localhost:27017/mydb')
			`),
		Packages: []string{"@nestjs/mongoose", "mongoose"},
	},
}

// SpringTemplateFor returns the Spring Boot template for db.
func SpringTemplateFor(db Database) (SpringTemplate, error) {
	t, ok := springTemplates[db]
	if !ok {
		return SpringTemplate{}, ErrUnknownDatabase
	}
	return t, nil
}

// NestTemplateFor returns the NestJS template for db.
// The returned Packages slice is a copy.
func NestTemplateFor(db Database) (NestTemplate, error) {
	t, ok := nestTemplates[db]
	if !ok {
		return NestTemplate{}, ErrUnknownDatabase
	}
	t.Packages = slices.Clone(t.Packages)
	return t, nil
}

// MissingTemplates returns every framework/database pair that has no
// template entry. An empty result means every table covers every database.
func MissingTemplates() []Selection {
	var missing []Selection
	for _, db := range Databases {
		if _, ok := springTemplates[db]; !ok {
			missing = append(missing, Selection{Framework: FrameworkSpringBoot, Database: db})
		}
		if _, ok := nestTemplates[db]; !ok {
			missing = append(missing, Selection{Framework: FrameworkNestJS, Database: db})
		}
	}
	return missing
}
