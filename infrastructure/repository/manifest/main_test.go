package manifest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/t-kuni/ngpkgsync/domain/model/jsonTree"
	"github.com/t-kuni/ngpkgsync/domain/model/syncError"
	"github.com/t-kuni/ngpkgsync/testUtil"
)

func TestRepository_ReadDescriptor(t *testing.T) {
	t.Run("angular.jsonが読み込まれること", func(t *testing.T) {
		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		space.WriteFile("angular.json", []byte(`{
  "$schema": "./node_modules/@angular/cli/lib/config/schema.json",
  "version": 1,
  "projects": {
    "ui-kit": {"projectType": "library", "root": "projects/ui-kit", "prefix": "lib"},
    "demo": {"projectType": "application", "root": ""}
  }
}`))

		descriptor, err := NewRepository().ReadDescriptor("angular.json")

		assert.NoError(t, err)
		assert.Len(t, descriptor.Projects, 2)
		assert.Equal(t, "ui-kit", descriptor.Projects[0].Name)
		assert.Equal(t, "projects/ui-kit", descriptor.Projects[0].Root)
	})

	tests := []struct {
		name    string
		content string
	}{
		{name: "JSONとして不正な場合", content: `{"projects": `},
		{name: "ルートがオブジェクトでない場合", content: `[1, 2]`},
		{name: "projectsが無い場合", content: `{"version": 1}`},
		{name: "projectsが空の場合", content: `{"projects": {}}`},
		{name: "projectsが複数回ある場合", content: `{"projects": {"a": {"projectType": "library", "root": "a"}}, "projects": {"b": {"projectType": "library", "root": "b"}}}`},
		{name: "プロジェクト名が重複している場合", content: `{"projects": {"a": {"root": "a"}, "a": {"root": "b"}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name+"はParseErrorになること", func(t *testing.T) {
			space := testUtil.BeginTestSpace(t)
			defer space.CleanUp()

			space.WriteFile("angular.json", []byte(tt.content))

			_, err := NewRepository().ReadDescriptor("angular.json")

			var parseErr *syncError.ParseError
			assert.True(t, errors.As(err, &parseErr))
			assert.Equal(t, "angular.json", parseErr.Path)
		})
	}
}

func TestRepository_ReadDescriptor_RepeatedProjects(t *testing.T) {
	space := testUtil.BeginTestSpace(t)
	defer space.CleanUp()

	space.WriteFile("angular.json", []byte(`{"projects": {"a": {"root": "a"}}, "version": 1, "projects": {"b": {"root": "b"}}}`))

	_, err := NewRepository().ReadDescriptor("angular.json")

	assert.ErrorContains(t, err, "projects is declared more than once")
}

func TestRepository_ReadTree(t *testing.T) {
	t.Run("不正なJSONはParseErrorになること", func(t *testing.T) {
		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		space.WriteFile("package.json", []byte(`{"name": "lib",`))

		_, err := NewRepository().ReadTree("package.json")

		var parseErr *syncError.ParseError
		assert.True(t, errors.As(err, &parseErr))
	})

	t.Run("ルートがオブジェクトでない場合はParseErrorになること", func(t *testing.T) {
		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		space.WriteFile("package.json", []byte(`"lib"`))

		_, err := NewRepository().ReadTree("package.json")

		var parseErr *syncError.ParseError
		assert.True(t, errors.As(err, &parseErr))
	})

	t.Run("存在しないファイルはエラーになること", func(t *testing.T) {
		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		_, err := NewRepository().ReadTree("package.json")
		assert.Error(t, err)
	})
}

func TestRepository_WriteTree(t *testing.T) {
	t.Run("変更していないメンバーが順序も含めて保持されること", func(t *testing.T) {
		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		space.WriteFile("package.json", []byte(`{"name":"@acme/ui-kit","version":"0.0.1","peerDependencies":{"@angular/core":"^16.0.0"},"dependencies":{"tslib":"^2.3.0"},"sideEffects":false,"exports":{"./package.json":{"default":"./package.json"}}}`))

		repo := NewRepository()
		tree, err := repo.ReadTree("package.json")
		assert.NoError(t, err)

		deps := jsonTree.NewObject()
		deps.Append("tslib", jsonTree.NewString("^2.6.0"))
		tree.Set("dependencies", deps)

		err = repo.WriteTree("package.json", tree)
		assert.NoError(t, err)

		space.AssertFile("package.json", func(actual []byte) {
			expect := `{
  "name": "@acme/ui-kit",
  "version": "0.0.1",
  "peerDependencies": {
    "@angular/core": "^16.0.0"
  },
  "dependencies": {
    "tslib": "^2.6.0"
  },
  "sideEffects": false,
  "exports": {
    "./package.json": {
      "default": "./package.json"
    }
  }
}
`
			assert.Equal(t, expect, string(actual))
		})
	})

	t.Run("ルートがオブジェクトでない場合は何も書き込まないこと", func(t *testing.T) {
		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		err := NewRepository().WriteTree("package.json", jsonTree.NewString("x"))

		assert.NoError(t, err)
		space.AssertNotExistPath("package.json")
	})
}
