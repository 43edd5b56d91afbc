package parser

import (
	"github.com/rdleon/lox-go/internal/ast"
	"github.com/rdleon/lox-go/internal/token"
)

// declaration -> classDecl | funDecl | varDecl | statement
//
// On error, synchronize() is called and nil is returned so ParseProgram
// skips the broken statement and keeps going.
func (p *Parser) declaration() ast.Stmt {
	stmt, err := p.declarationOrError()
	if err != nil {
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) declarationOrError() (ast.Stmt, error) {
	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.checkFunDecl():
		p.advance() // consume 'fun'
		return p.function("function", false)
	case p.match(token.VAR):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

// checkFunDecl reports whether the upcoming tokens begin a top-level
// function declaration (`fun IDENTIFIER`), as opposed to a `fun` used to
// start a lambda expression inside a larger expression statement.
func (p *Parser) checkFunDecl() bool {
	if !p.check(token.FUN) {
		return false
	}
	if p.current+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.current+1].Kind == token.IDENTIFIER
}

// classDecl -> "class" IDENTIFIER ( "<" IDENTIFIER )? "{" ( "static"? function )* "}"
func (p *Parser) classDeclaration() (ast.Stmt, error) {
	name, err := p.consume(token.IDENTIFIER, "Expect class name.")
	if err != nil {
		return nil, err
	}

	var superclass *ast.Variable
	if p.match(token.LESS) {
		if _, err := p.consume(token.IDENTIFIER, "Expect superclass name."); err != nil {
			return nil, err
		}
		superclass = &ast.Variable{Name: p.previous()}
	}

	if _, err := p.consume(token.LEFT_BRACE, "Expect '{' before class body."); err != nil {
		return nil, err
	}

	var methods []*ast.FunctionStmt
	seen := map[string]bool{}
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		isStatic := p.match(token.PREFIX)
		method, err := p.function("method", isStatic)
		if err != nil {
			return nil, err
		}
		if seen[method.Name.Lexeme] {
			p.error(method.Name, "Method '"+method.Name.Lexeme+"' already defined in this class.")
		}
		seen[method.Name.Lexeme] = true
		methods = append(methods, method)
	}

	if _, err := p.consume(token.RIGHT_BRACE, "Expect '}' after class body."); err != nil {
		return nil, err
	}

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}, nil
}

// function -> IDENTIFIER "(" parameters? ")" block
//
// kind is "function" or "method", used only in error messages.
func (p *Parser) function(kind string, isStatic bool) (*ast.FunctionStmt, error) {
	name, err := p.consume(token.IDENTIFIER, "Expect "+kind+" name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LEFT_PAREN, "Expect '(' after "+kind+" name."); err != nil {
		return nil, err
	}
	params, err := p.parameters()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LEFT_BRACE, "Expect '{' before "+kind+" body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionStmt{Name: name, Params: params, Body: body, IsStatic: isStatic}, nil
}

// varDecl -> "var" IDENTIFIER ( "=" expression )? ";"
func (p *Parser) varDeclaration() (ast.Stmt, error) {
	name, err := p.consume(token.IDENTIFIER, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expr
	if p.match(token.EQUAL) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}

	return &ast.VarStmt{Name: name, Initializer: initializer}, nil
}

// statement -> exprStmt | forStmt | ifStmt | printStmt | returnStmt
//            | whileStmt | block | importStmt
func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.IMPORT):
		return p.importStatement()
	case p.match(token.LEFT_BRACE):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return &ast.BlockStmt{Statements: stmts}, nil
	default:
		return p.expressionStatement()
	}
}

// importStmt -> "import" IDENTIFIER ";"
func (p *Parser) importStatement() (ast.Stmt, error) {
	keyword := p.previous()
	name, err := p.consume(token.IDENTIFIER, "Expect module name after 'import'.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after import statement."); err != nil {
		return nil, err
	}
	return &ast.ImportStmt{Keyword: keyword, ModuleName: name}, nil
}

// forStmt -> "for" "(" ( varDecl | exprStmt | ";" ) expression? ";" expression? ")" statement
//
// Desugared at parse time into a block containing the initializer followed
// by a while loop: the evaluator never sees ForStmt.
func (p *Parser) forStatement() (ast.Stmt, error) {
	forTok := p.previous()
	if _, err := p.consume(token.LEFT_PAREN, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		initializer = nil
	case p.match(token.VAR):
		var err error
		initializer, err = p.varDeclaration()
		if err != nil {
			return nil, err
		}
	default:
		var err error
		initializer, err = p.expressionStatement()
		if err != nil {
			return nil, err
		}
	}

	var condition ast.Expr
	if !p.check(token.SEMICOLON) {
		var err error
		condition, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		var err error
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{body, &ast.ExprStmt{Expression: increment}}}
	}

	if condition == nil {
		condition = &ast.Literal{Value: true}
	}
	body = &ast.WhileStmt{Token: forTok, Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{initializer, body}}
	}

	return body, nil
}

// ifStmt -> "if" "(" expression ")" statement ( "else" statement )?
func (p *Parser) ifStatement() (ast.Stmt, error) {
	ifTok := p.previous()
	if _, err := p.consume(token.LEFT_PAREN, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RIGHT_PAREN, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}

	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfStmt{Token: ifTok, Condition: condition, Then: thenBranch, Else: elseBranch}, nil
}

// printStmt -> "print" expression ";"
func (p *Parser) printStatement() (ast.Stmt, error) {
	printTok := p.previous()
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &ast.PrintStmt{Token: printTok, Expression: value}, nil
}

// returnStmt -> "return" expression? ";"
func (p *Parser) returnStatement() (ast.Stmt, error) {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		var err error
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Keyword: keyword, Value: value}, nil
}

// whileStmt -> "while" "(" expression ")" statement
func (p *Parser) whileStatement() (ast.Stmt, error) {
	whileTok := p.previous()
	if _, err := p.consume(token.LEFT_PAREN, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RIGHT_PAREN, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Token: whileTok, Condition: condition, Body: body}, nil
}

// block -> "{" declaration* "}"
//
// The leading '{' must already be consumed; this consumes the trailing '}'.
func (p *Parser) block() ([]ast.Stmt, error) {
	var statements []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	if _, err := p.consume(token.RIGHT_BRACE, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}

// exprStmt -> expression ";"
func (p *Parser) expressionStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expression: expr}, nil
}
