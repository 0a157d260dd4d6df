package database

// TriggerMessage is raised by the database when a statement would leave no
// admin holding manage_users.
const TriggerMessage = "at least one admin must keep manage_users"

var postgresTriggers = []string{
	`CREATE OR REPLACE FUNCTION at_least_one_manage_users() RETURNS trigger AS $$
BEGIN
	IF OLD.manage_users AND (TG_OP = 'DELETE' OR NOT NEW.manage_users) THEN
		-- Concurrent writers wait here, then count the committed result.
		LOCK TABLE admins IN SHARE ROW EXCLUSIVE MODE;
		IF (SELECT COUNT(*) FROM admins WHERE manage_users) <= 1 THEN
			RAISE EXCEPTION '` + TriggerMessage + `';
		END IF;
	END IF;
	IF TG_OP = 'DELETE' THEN
		RETURN OLD;
	END IF;
	RETURN NEW;
END;
$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS at_least_one_manage_users ON admins`,
	`CREATE TRIGGER at_least_one_manage_users
	BEFORE UPDATE OR DELETE ON admins
	FOR EACH ROW EXECUTE FUNCTION at_least_one_manage_users()`,
}

var sqliteTriggers = []string{
	`CREATE TRIGGER IF NOT EXISTS at_least_one_manage_users_delete
	BEFORE DELETE ON admins
	FOR EACH ROW
	WHEN OLD.manage_users = 1 AND (SELECT COUNT(*) FROM admins WHERE manage_users = 1) <= 1
	BEGIN
		SELECT RAISE(ABORT, '` + TriggerMessage + `');
	END`,
	`CREATE TRIGGER IF NOT EXISTS at_least_one_manage_users_update
	BEFORE UPDATE OF manage_users ON admins
	FOR EACH ROW
	WHEN OLD.manage_users = 1 AND NEW.manage_users = 0 AND (SELECT COUNT(*) FROM admins WHERE manage_users = 1) <= 1
	BEGIN
		SELECT RAISE(ABORT, '` + TriggerMessage + `');
	END`,
}
